package storage

import "sync"

// MemoryStore implements Store without persistence
type MemoryStore struct {
	data *collection
	mu   sync.RWMutex
}

// NewMemoryStore creates a store seeded with tasks, in order. The id
// counter starts at the highest seeded id.
func NewMemoryStore(tasks ...Task) *MemoryStore {
	return &MemoryStore{data: newCollection(tasks)}
}

func (s *MemoryStore) GetTasks(filter *State) []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.list(filter)
}

func (s *MemoryStore) GetTask(id uint8) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.data.get(id)
}

func (s *MemoryStore) AddTask(text string) (uint8, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.add(text)
}

func (s *MemoryStore) SetState(id uint8, rawState string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.setState(id, rawState)
}

func (s *MemoryStore) UpdateTask(id uint8, text string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.setText(id, text), nil
}

func (s *MemoryStore) RemoveTask(id uint8) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data.remove(id), nil
}

// Close is a no-op
func (s *MemoryStore) Close() error {
	return nil
}
