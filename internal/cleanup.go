package internal

import "sync"

// CleanupManager releases resources acquired during an invocation, most
// recent first, before the wrapper exits with the child's status.
type CleanupManager struct {
	mu     sync.Mutex
	writer Writer
	steps  []cleanupStep
}

type cleanupStep struct {
	name string
	fn   func() error
}

// NewCleanupManager creates a cleanup manager that reports failures as
// warnings on w.
func NewCleanupManager(w Writer) *CleanupManager {
	return &CleanupManager{writer: w}
}

// Add registers a cleanup step. Steps run in LIFO order.
func (m *CleanupManager) Add(name string, fn func() error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.steps = append(m.steps, cleanupStep{name: name, fn: fn})
}

// Execute runs every registered step once, newest first, and keeps going
// when a step fails. Steps are forgotten afterwards.
func (m *CleanupManager) Execute() {
	m.mu.Lock()
	steps := m.steps
	m.steps = nil
	m.mu.Unlock()

	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i].fn(); err != nil {
			m.writer.Warningf("cleanup failed for %s: %v", steps[i].name, err)
		}
	}
}
