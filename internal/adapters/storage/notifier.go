package storage

import "sync"

// collection identifies a change-notification topic, one per table.
type collection string

const (
	colJournal     collection = "journal"
	colMilestones  collection = "milestones"
	colTasks       collection = "tasks"
	colTimeEntries collection = "time_entries"
)

// notifier fans out write notifications to watch subscriptions. Signals
// carry no payload; watchers re-run their query on each signal, which
// also coalesces bursts of writes into a single refresh.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[collection]map[int]chan struct{}
}

func newNotifier() *notifier {
	return &notifier{
		subs: make(map[collection]map[int]chan struct{}),
	}
}

// subscribe registers a listener for a collection. The returned cancel
// function removes the registration.
func (n *notifier) subscribe(c collection) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[c] == nil {
		n.subs[c] = make(map[int]chan struct{})
	}

	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[c][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[c], id)
	}

	return ch, cancel
}

// broadcast signals every listener of a collection. The send is
// non-blocking: a listener with a pending signal will refresh anyway.
func (n *notifier) broadcast(c collection) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[c] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
