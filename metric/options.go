package metric

// defaultBaseDir is the default base directory for metric files.
const defaultBaseDir = "."

// Options configure the local metric manager.
type Options struct {
	BaseDir string  // BaseDir is the base directory for metric files.
	Locator Locator // Locator is the locator for metric files.
}

// NewOptions constructs Options with the default values.
func NewOptions(opts ...Option) *Options {
	options := &Options{
		BaseDir: defaultBaseDir,
		Locator: &locator{},
	}
	for _, o := range opts {
		o(options)
	}
	return options
}

// Option is a functional option for configuring the metric manager.
type Option func(*Options)

// WithBaseDir sets the root directory for storing metric JSON files.
func WithBaseDir(dir string) Option {
	return func(o *Options) {
		o.BaseDir = dir
	}
}

// WithLocator sets the locator.
func WithLocator(l Locator) Option {
	return func(o *Options) {
		o.Locator = l
	}
}
