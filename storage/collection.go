package storage

import "math"

// collection is the ordered task list plus the id counter shared by
// every Store implementation
type collection struct {
	tasks  []Task
	lastID uint8
}

// newCollection adopts tasks in order and restores the counter to the
// highest id present
func newCollection(tasks []Task) *collection {
	c := &collection{tasks: make([]Task, 0, len(tasks))}
	for _, t := range tasks {
		c.tasks = append(c.tasks, t)
		if t.ID > c.lastID {
			c.lastID = t.ID
		}
	}
	return c
}

func (c *collection) clone() *collection {
	tasks := make([]Task, len(c.tasks))
	copy(tasks, c.tasks)
	return &collection{tasks: tasks, lastID: c.lastID}
}

func (c *collection) index(id uint8) int {
	for i, t := range c.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c *collection) list(filter *State) []Task {
	tasks := []Task{}
	for _, t := range c.tasks {
		if filter == nil || t.State == *filter {
			tasks = append(tasks, t)
		}
	}
	return tasks
}

func (c *collection) get(id uint8) (Task, bool) {
	i := c.index(id)
	if i < 0 {
		return Task{}, false
	}
	return c.tasks[i], true
}

func (c *collection) add(text string) (uint8, error) {
	if c.lastID == math.MaxUint8 {
		return 0, ErrIDsExhausted
	}
	c.lastID++
	c.tasks = append(c.tasks, NewTask(c.lastID, text, NotStarted))
	return c.lastID, nil
}

// setState validates rawState only once the task is known to exist
func (c *collection) setState(id uint8, rawState string) (bool, error) {
	i := c.index(id)
	if i < 0 {
		return false, nil
	}
	state, err := ParseState(rawState)
	if err != nil {
		return false, err
	}
	c.tasks[i].State = state
	return true, nil
}

func (c *collection) setText(id uint8, text string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.tasks[i].Text = text
	return true
}

func (c *collection) remove(id uint8) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return true
}
