package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	dryRun bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithDryRun reports what a sync would do without writing anything.
func WithDryRun(dryRun bool) Option {
	return func(a *application) {
		a.dryRun = dryRun
	}
}
