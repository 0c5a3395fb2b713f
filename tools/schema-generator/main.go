// Command schema-generator regenerates schema/spoolview.schema.json from the
// config types. It runs from config/ via go generate.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/grovetools/spoolview/config"
	"github.com/spf13/pflag"
)

func main() {
	output := pflag.StringP("output", "o", "../schema/spoolview.schema.json", "schema file to write")
	check := pflag.Bool("check", false, "fail if the schema file is out of date instead of writing it")
	pflag.Parse()

	data, err := config.GenerateSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *check {
		current, err := os.ReadFile(*output)
		if err != nil || !bytes.Equal(current, data) {
			fmt.Fprintf(os.Stderr, "%s is out of date; run go generate ./config\n", *output)
			os.Exit(1)
		}
		return
	}

	if err := os.WriteFile(*output, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "write schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *output)
}
