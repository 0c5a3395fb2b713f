package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler adds profiling flags to a command tree.
type CobraProfiler struct {
	cpuProfilePath string
	memProfilePath string
	timing         bool

	cpuProfileFile *os.File
}

// NewCobraProfiler creates a profiler with no flags set.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// Attach registers the flags on root and installs the persistent hooks.
func (p *CobraProfiler) Attach(root *cobra.Command) {
	root.PersistentFlags().StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write a CPU profile to file")
	root.PersistentFlags().StringVar(&p.memProfilePath, "mem-profile", "", "Write a heap profile to file")
	root.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print catalog and session timings on exit")
	root.PersistentPreRunE = p.PreRun
	root.PersistentPostRunE = p.PostRun
}

// PreRun starts the requested profiles.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}
	if p.cpuProfilePath == "" {
		return nil
	}
	f, err := os.Create(p.cpuProfilePath)
	if err != nil {
		return fmt.Errorf("could not create CPU profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("could not start CPU profile: %w", err)
	}
	p.cpuProfileFile = f
	return nil
}

// PostRun writes the profiles and the timing summary to the command's stderr.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) error {
	out := cmd.ErrOrStderr()
	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		p.cpuProfileFile.Close()
		p.cpuProfileFile = nil
		fmt.Fprintf(out, "CPU profile written to %s\n", p.cpuProfilePath)
	}

	if p.memProfilePath != "" {
		f, err := os.Create(p.memProfilePath)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
		fmt.Fprintf(out, "Memory profile written to %s\n", p.memProfilePath)
	}

	if p.timing {
		Summarize(out)
	}
	return nil
}
