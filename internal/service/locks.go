package service

import "sync"

// customerLocks serializes settlements per customer. Allocation order and
// balance mutation are not commutative, so two settlements for the same
// customer must never interleave. Mutexes are kept for the process lifetime;
// the map is bounded by the customer count.
type customerLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newCustomerLocks() *customerLocks {
	return &customerLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the customer's mutex and returns its release func.
func (c *customerLocks) lock(customerID uint) func() {
	c.mu.Lock()
	m, ok := c.locks[customerID]
	if !ok {
		m = &sync.Mutex{}
		c.locks[customerID] = m
	}
	c.mu.Unlock()
	m.Lock()
	return m.Unlock
}
