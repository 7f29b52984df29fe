package session

// SetIDGenerator overrides id generation so tests can force collisions.
func (s *Store) SetIDGenerator(fn func() (string, error)) {
	s.newID = fn
}
