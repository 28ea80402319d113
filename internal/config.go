package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/laguz/internal/flomo"
)

// Config represents the application configuration.
type Config struct {
	App  ApplicationConfig `yaml:"app"`
	Tags []string          `yaml:"tags"`
	OSS  OSSConfig         `yaml:"oss"`
	Sync SyncConfig        `yaml:"sync"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Tags, validation.Required, validation.Length(1, 0)),
	); err != nil {
		return err
	}
	if err := c.OSS.Validate(); err != nil {
		return err
	}
	return c.Sync.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// OSSConfig holds the durable object storage destination for rehosted
// media. Public URLs take the form https://{bucket}.{endpoint}/{key}.
type OSSConfig struct {
	Endpoint string `yaml:"endpoint"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
}

// Validate validates the object storage configuration.
func (c *OSSConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Endpoint, validation.Required),
		validation.Field(&c.Bucket, validation.Required),
	)
}

// SyncConfig bounds a sync run: where documents go and how far back the
// fetch window reaches.
type SyncConfig struct {
	OutputDir  string `yaml:"output_dir"`
	DaysToSync int    `yaml:"days_to_sync"`
	Limit      int    `yaml:"limit"`
}

// Validate validates the sync configuration.
func (c *SyncConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.OutputDir, validation.Required),
		validation.Field(&c.DaysToSync, validation.Min(1)),
		validation.Field(&c.Limit, validation.Min(0), validation.Max(flomo.FetchLimitCeiling)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		OSS: OSSConfig{
			Prefix: "flomo/",
		},
		Sync: SyncConfig{
			OutputDir:  "./content/posts",
			DaysToSync: 30,
			Limit:      flomo.FetchLimitCeiling,
		},
	}
}
