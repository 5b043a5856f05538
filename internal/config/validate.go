package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validBackends = map[string]bool{
	"memory": true, "file": true, "sqlite": true,
}

var validImportModes = map[string]bool{
	"merge": true, "replace": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if !validBackends[c.Storage.Backend] {
		errs = append(errs, fmt.Sprintf("storage.backend: must be one of memory, file, sqlite; got %q", c.Storage.Backend))
	}
	if c.Storage.Backend != "memory" && c.Storage.Path == "" {
		errs = append(errs, fmt.Sprintf("storage.path: required for the %s backend", c.Storage.Backend))
	}

	if !validImportModes[c.Library.ImportMode] {
		errs = append(errs, fmt.Sprintf("library.import_mode: must be merge or replace; got %q", c.Library.ImportMode))
	}

	return errs
}
