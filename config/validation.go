package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/grovetools/spoolview/errors"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration for structural errors
func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.ConfigInvalid("version is required")
	}

	for _, category := range c.Catalog.Categories {
		if err := ValidateIdentifier("catalog.categories", category); err != nil {
			return err
		}
	}
	if c.Catalog.GroupAttribute != "" {
		if err := ValidateIdentifier("catalog.group_attribute", c.Catalog.GroupAttribute); err != nil {
			return err
		}
	}

	if c.Viewport.SettleDelay != "" {
		d, err := time.ParseDuration(c.Viewport.SettleDelay)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "viewport.settle_delay is not a duration").
				WithDetail("value", c.Viewport.SettleDelay)
		}
		if d < 0 {
			return errors.ConfigInvalid("viewport.settle_delay must not be negative")
		}
	}
	if c.Viewport.PickOffset != nil && *c.Viewport.PickOffset < 0 {
		return errors.ConfigInvalid("viewport.pick_offset must not be negative")
	}

	for i, spool := range c.Spools {
		if strings.TrimSpace(spool) == "" {
			return errors.ConfigInvalid(fmt.Sprintf("spools[%d] is empty", i))
		}
	}

	return nil
}

// ValidateIdentifier rejects names that cannot be used verbatim as SQL identifiers.
func ValidateIdentifier(field, name string) error {
	if !identifierRegex.MatchString(name) {
		return errors.ConfigInvalid(fmt.Sprintf("%s: %q is not a valid identifier", field, name)).
			WithDetail("field", field)
	}
	return nil
}
