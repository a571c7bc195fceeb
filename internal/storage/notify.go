package storage

import "sync"

// Notifier fans out change notifications to subscribed presentation
// surfaces. Delivery is best effort: each subscriber has a buffered
// slot of one, and a subscriber that has not drained its channel
// simply coalesces the pending notification instead of blocking the
// mutation path.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// Subscribe registers a new observer. The returned channel receives a
// signal after every broadcast; the returned function removes the
// subscription and must be called when the observer is torn down.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]chan struct{})
	}

	id := n.nextID
	n.nextID++

	ch := make(chan struct{}, 1)
	n.subs[id] = ch

	unsubscribe := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}

	return ch, unsubscribe
}

// Broadcast signals all current subscribers without blocking.
func (n *Notifier) Broadcast() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
