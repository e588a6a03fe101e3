package config

import "fmt"

// ConfigInitError reports a config file that exists but cannot be used to
// reach a notes server yet.
type ConfigInitError struct {
	Path   string
	Reason string
}

func (e *ConfigInitError) Error() string {
	return fmt.Sprintf(
		"%s: %s (run `kn workspace add --name <name> --url <server> --current`)",
		e.Path,
		e.Reason,
	)
}
