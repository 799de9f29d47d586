package textmetric

// options holds configuration for ROUGE scoring.
type options struct {
	// rougeTypes holds the requested ROUGE types to compute.
	rougeTypes []string
	// useStemmer enables Porter stemming during tokenization.
	useStemmer bool
	// splitSummaries enables Punkt sentence splitting for rougeLsum.
	splitSummaries bool
}

// newOptions applies functional options to build a scoring configuration.
func newOptions(opt ...Option) *options {
	opts := &options{}
	for _, o := range opt {
		o(opts)
	}
	return opts
}

// Option configures ROUGE scoring.
type Option func(*options)

// WithRougeTypes sets the ROUGE types to compute.
func WithRougeTypes(rougeTypes ...string) Option {
	return func(o *options) {
		o.rougeTypes = append([]string(nil), rougeTypes...)
	}
}

// WithStemmer enables or disables Porter stemming in the tokenizer.
func WithStemmer(useStemmer bool) Option {
	return func(o *options) {
		o.useStemmer = useStemmer
	}
}

// WithSplitSummaries splits summaries into sentences for rougeLsum instead of
// splitting on newlines.
func WithSplitSummaries(splitSummaries bool) Option {
	return func(o *options) {
		o.splitSummaries = splitSummaries
	}
}
