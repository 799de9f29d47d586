package evalresult

// defaultBaseDir is the default base directory for report files.
const defaultBaseDir = "reports"

// Options configure the local report manager.
type Options struct {
	BaseDir string  // BaseDir is the base directory for report files.
	Locator Locator // Locator is the locator for report files.
}

// NewOptions constructs Options with the default values.
func NewOptions(opt ...Option) *Options {
	opts := &Options{
		BaseDir: defaultBaseDir,
		Locator: &locator{},
	}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures the local report manager.
type Option func(*Options)

// WithBaseDir overrides the default base directory used to store reports.
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
