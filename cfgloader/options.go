package cfgloader

// Options holds configuration options for MustLoad and Load.
type Options struct {
	// Silent disables printing the loaded config to stdout.
	Silent bool

	// Dir is the directory holding the ${ENVIRONMENT}.yaml files. Defaults to "./config".
	Dir string
}

// Option is a functional option for configuring MustLoad behavior.
type Option func(*Options)

// WithSilent disables config logging to stdout.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir sets the directory the config files are read from.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

func newOptions(opts []Option) Options {
	o := Options{Dir: "./config"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
