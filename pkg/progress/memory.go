package progress

import "sync"

var _ Reporter = (*Memory)(nil)

// Memory is an in-process Reporter.
type Memory struct {
	mu     sync.RWMutex
	ledger Ledger
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{ledger: make(Ledger)}
}

// Done implements Reporter.
func (m *Memory) Done(title, batch string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Done(title, batch)
}

// Report implements Reporter.
func (m *Memory) Report(title, batch string, o Outcome) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger.Set(title, batch, o)
	return nil
}

// Outcome returns the recorded outcome of title in batch.
func (m *Memory) Outcome(title, batch string) (Outcome, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Get(title, batch)
}

// Ledger returns a copy of everything recorded.
func (m *Memory) Ledger() Ledger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ledger.Clone()
}
