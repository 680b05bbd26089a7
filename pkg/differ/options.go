package differ

// Option is a functional option for configuring Diff
type Option func(*differ)

// WithIgnoredFields sets fields to ignore during comparison
func WithIgnoredFields(fields ...string) Option {
	return func(d *differ) {
		for _, field := range fields {
			d.ignoreFields[field] = true
		}
	}
}

// WithAttributes enables/disables comparison of opaque column attributes
func WithAttributes(enabled bool) Option {
	return func(d *differ) {
		d.attributes = enabled
	}
}
