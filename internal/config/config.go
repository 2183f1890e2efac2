package config

import (
	"os"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

const (
	DefaultPath       = "/etc/plura/config.yaml"
	DefaultBaseDomain = "example.com"
	DefaultListenAddr = ":8000"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Firebase Firebase `yaml:"firebase"`
	Storage  Storage  `yaml:"storage"`
}

type Server struct {
	ListenAddr    string `yaml:"listenAddr"`
	BaseDomain    string `yaml:"baseDomain"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Firebase struct {
	ProjectID       string `yaml:"projectID"`
	CredentialsFile string `yaml:"credentialsFile"`
}

type Storage struct {
	Bucket        string `yaml:"bucket"`
	PublicBaseURL string `yaml:"publicBaseURL"`
}

// Path returns the config file location, honoring PLURA_CONFIG.
func Path() string {
	if p := os.Getenv("PLURA_CONFIG"); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to open config")
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if base := os.Getenv("PLURA_BASE_DOMAIN"); base != "" {
		c.Server.BaseDomain = base
	}
	if c.Server.BaseDomain == "" {
		c.Server.BaseDomain = DefaultBaseDomain
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
}

// Domain returns the subset of the configuration handlers depend on.
func (c Config) Domain() domain.Config {
	return domain.Config{
		BaseDomain:    c.Server.BaseDomain,
		Bucket:        c.Storage.Bucket,
		PublicBaseURL: c.Storage.PublicBaseURL,
	}
}
