package storage

// Store defines the interface for task storage.
// Lookups against an unknown id report false rather than an error.
type Store interface {
	GetTasks(filter *State) []Task
	GetTask(id uint8) (Task, bool)
	AddTask(text string) (uint8, error)
	SetState(id uint8, rawState string) (bool, error)
	UpdateTask(id uint8, text string) (bool, error)
	RemoveTask(id uint8) (bool, error)

	// Lifecycle
	Close() error
}
