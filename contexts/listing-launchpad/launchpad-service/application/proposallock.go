package application

import "sync"

// ProposalLocks serializes mutating operations per proposal id. Holding the
// lock for load -> mutate -> save is the sole mechanism preventing supply
// oversell and lost tally updates; operations on different proposals proceed
// fully in parallel. Locks are never removed: the proposal population is
// bounded and a lock must outlive every waiter.
type ProposalLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewProposalLocks() *ProposalLocks {
	return &ProposalLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-proposal mutex and returns its unlock function.
func (l *ProposalLocks) Lock(proposalID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[proposalID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[proposalID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
