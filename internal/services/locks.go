package services

import "sync"

// scheduleLocks hands out one mutex per schedule id so reservation
// transactions against the same schedule serialize inside this process.
// The database row lock is the authoritative guard; this table narrows the
// race window and keeps the check-then-insert testable without a live DB.
type scheduleLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newScheduleLocks() *scheduleLocks {
	return &scheduleLocks{locks: map[int64]*sync.Mutex{}}
}

// Acquire blocks until the schedule's lock is held and returns the release
// func. Entries are kept for the process lifetime; the table is bounded by
// the number of schedules ever reserved against.
func (l *scheduleLocks) Acquire(scheduleID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[scheduleID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[scheduleID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// reservationLocks is shared by every BookingService in the process, the
// same way the config package shares the DB handle.
var reservationLocks = newScheduleLocks()
