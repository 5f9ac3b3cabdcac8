package filter

// Option configures a State.
type Option func(*State)

// WithMaxTermLength caps the search term in runes. Zero or less disables the cap.
func WithMaxTermLength(n int) Option {
	return func(s *State) {
		s.maxTerm = n
	}
}
