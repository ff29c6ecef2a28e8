package dock

// Releases counts how many times drag cleanup ran.
func (s *Session) Releases() int { return s.releases }

// LiveEntities counts allocated arena entities of kind k.
func (m *Master) LiveEntities(k Kind) int { return m.t.live(k) }
