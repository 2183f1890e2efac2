package domain

// Config is the runtime configuration shared with handlers and middleware.
type Config struct {
	BaseDomain    string `yaml:"baseDomain"`
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"publicBaseURL"`
}
