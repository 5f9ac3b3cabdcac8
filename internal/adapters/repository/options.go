package repository

type options struct {
	recordMetrics bool
}

// Option applies a configuration option to the MemoryStore.
type Option func(*options)

// WithoutMetrics stops the store from publishing catalog size gauges.
func WithoutMetrics() Option {
	return func(o *options) {
		o.recordMetrics = false
	}
}
