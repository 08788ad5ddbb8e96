package config

// SetPath is exported for testing
func (s *Scoring) SetPath(path string) {
	s.path = path
}
