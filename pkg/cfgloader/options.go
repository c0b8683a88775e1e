package cfgloader

// Options controls optional MustLoad behavior.
type Options struct {
	// Silent suppresses logging of the loaded configuration.
	Silent bool
}

// Option mutates Options.
type Option func(*Options)

// WithSilent stops MustLoad from logging the loaded configuration.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}
