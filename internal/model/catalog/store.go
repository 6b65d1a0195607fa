package catalog

// Store exposes the game catalog for HTTP handlers.
type Store interface {
	List() []Game
	FindByID(id string) (Game, bool)
}

// MemoryStore implements Store over a fixed slice.
type MemoryStore struct {
	items []Game
}

// NewMemoryStore returns a MemoryStore preloaded with items.
func NewMemoryStore(items []Game) *MemoryStore {
	return &MemoryStore{items: append([]Game(nil), items...)}
}

// List returns every game in display order.
func (s *MemoryStore) List() []Game {
	return append([]Game(nil), s.items...)
}

// FindByID looks up a game by identifier.
func (s *MemoryStore) FindByID(id string) (Game, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Game{}, false
}
