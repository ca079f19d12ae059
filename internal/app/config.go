package app

import "errors"

// Config holds everything an App instance needs for one resolution run.
type Config struct {
	UnitPaths []string // manifest files or directories
	Roots     []string // root unit names; empty means every manifest-declared full configuration
	Props     []string // property files loaded into the environment before parsing
	BasePath  string   // base directory for relative resource locations

	LogFormat string
	LogLevel  string
	Report    string // "text" or "json"
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.UnitPaths) == 0 {
		return nil, errors.New("at least one unit path is required")
	}
	if cfg.Report == "" {
		cfg.Report = "text"
	}
	return &cfg, nil
}
