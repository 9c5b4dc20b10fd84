// internal/config/validate.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vmunix/medley/internal/catalog"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Listen != "" && !strings.Contains(c.Server.Listen, ":") {
		errs = append(errs, fmt.Sprintf("server.listen: must be host:port or :port, got %q", c.Server.Listen))
	}
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}

	// Scanner validation
	if c.Scanner.Interval != "" {
		if d, err := time.ParseDuration(c.Scanner.Interval); err != nil {
			errs = append(errs, fmt.Sprintf("scanner.interval: not a duration: %q", c.Scanner.Interval))
		} else if d < 0 {
			errs = append(errs, fmt.Sprintf("scanner.interval: must not be negative, got %q", c.Scanner.Interval))
		}
	}

	// At least one collection required
	if len(c.Collections) == 0 {
		errs = append(errs, "collections: at least one collection must be configured")
	}

	seen := make(map[string]int)
	for i, col := range c.Collections {
		if col.Name == "" {
			errs = append(errs, fmt.Sprintf("collections[%d].name: required", i))
		}
		if _, ok := catalog.ParseKind(col.Kind); !ok {
			errs = append(errs, fmt.Sprintf("collections[%d].kind: must be movies or shows, got %q", i, col.Kind))
		}
		if col.Dir == "" {
			errs = append(errs, fmt.Sprintf("collections[%d].dir: required", i))
			continue
		}
		if col.ID != "" {
			if prev, dup := seen[col.ID]; dup {
				errs = append(errs, fmt.Sprintf("collections[%d].id: %q already used by collections[%d]", i, col.ID, prev))
			}
			seen[col.ID] = i
		}

		// Collection path warnings (non-fatal)
		if _, err := os.Stat(col.Dir); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("collections[%d].dir: warning: directory %q does not exist", i, col.Dir))
		}
	}

	return errs
}
