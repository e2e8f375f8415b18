package app

// Config holds everything an App instance needs to run one reload.
type Config struct {
	// Branch scopes every derived path. It is intentionally not validated:
	// an empty identifier propagates into the paths unchanged.
	Branch string

	ManifestPath string // optional; built-in default stages when empty
	StorageRoot  string // overrides the manifest's reload block when set
	ScriptsRoot  string // overrides the manifest's reload block when set
	SchemaPath   string // optional; regenerate the system-layer script first
	OutputPath   string // assembled entry script destination; stdout when empty

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig normalizes a Config. Validation of individual fields happens at
// the CLI boundary; here only defaults are filled in.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return &cfg, nil
}
