// Package notify delivers change signals for display outputs and settings.
//
// Observers subscribe to all changes or to a dot-separated path prefix.
// Delivery is synchronous and in subscription order, so a host event loop
// sees signals in the order the session emitted them.
package notify

import (
	"slices"
	"strings"
	"sync"
)

// Well-known paths.
const (
	PathDisplayLetters = "display.letters"
	PathGlyphWindow    = "glyphs.window"
	PathLoadedRange    = "glyphs.loaded_range"
	PathStyle          = "config.style"
)

// ChangeType represents the kind of change.
type ChangeType int

const (
	// ChangeUpdate indicates an output was replaced.
	ChangeUpdate ChangeType = iota

	// ChangeClear indicates an output was emptied.
	ChangeClear

	// ChangeReload indicates every output should be re-read.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeUpdate:
		return "update"
	case ChangeClear:
		return "clear"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change is a change signal.
type Change struct {
	// Path identifies the changed output. Empty for reload events.
	Path string

	Type ChangeType

	// Value is the new value (may be nil).
	Value any

	// Source identifies the emitter, typically a session id.
	Source string
}

// Observer is called for each delivered change.
type Observer func(change Change)

type subscriber struct {
	id       uint64
	path     string // empty for all changes
	observer Observer
}

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages subscriptions.
type Notifier struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID uint64
	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for path and its children.
// Subscribing to "glyphs" receives "glyphs.window" and "glyphs.loaded_range".
// Reload events reach every observer.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscriber{id: id, path: path, observer: observer})
	return &Subscription{id: id, notifier: n}
}

// Notify delivers change to matching observers. Observers run outside the lock
// and may subscribe or unsubscribe.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	var observers []Observer
	for _, s := range n.subs {
		if matches(s.path, change.Path) {
			observers = append(observers, s.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// NotifyUpdate is a convenience method for update changes.
func (n *Notifier) NotifyUpdate(path string, value any, source string) {
	n.Notify(Change{Path: path, Type: ChangeUpdate, Value: value, Source: source})
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Len returns the number of active subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs)
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.subs = nil
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = slices.DeleteFunc(n.subs, func(s subscriber) bool { return s.id == id })
}

// matches reports whether a subscription to sub receives a change at path.
func matches(sub, path string) bool {
	if sub == "" || path == "" {
		return true
	}
	if sub == path {
		return true
	}
	return strings.HasPrefix(path, sub) && path[len(sub)] == '.'
}

// Batch collects changes and delivers them together once all mutations
// are complete.
type Batch struct {
	notifier *Notifier
	changes  []Change
}

// NewBatch creates a new batch. A batch is not safe for concurrent use.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Add adds a change to the batch.
func (b *Batch) Add(change Change) {
	b.changes = append(b.changes, change)
}

// Update adds an update change to the batch.
func (b *Batch) Update(path string, value any, source string) {
	b.Add(Change{Path: path, Type: ChangeUpdate, Value: value, Source: source})
}

// Clear adds a clear change to the batch.
func (b *Batch) Clear(path, source string) {
	b.Add(Change{Path: path, Type: ChangeClear, Source: source})
}

// Commit delivers all batched changes in order and empties the batch.
func (b *Batch) Commit() {
	changes := b.changes
	b.changes = nil
	for _, change := range changes {
		b.notifier.Notify(change)
	}
}

// Discard clears the batch without delivering.
func (b *Batch) Discard() {
	b.changes = nil
}

// Len returns the number of pending changes.
func (b *Batch) Len() int {
	return len(b.changes)
}

// Paths returns the paths of pending changes in order.
func (b *Batch) Paths() []string {
	paths := make([]string, len(b.changes))
	for i, c := range b.changes {
		paths[i] = c.Path
	}
	return paths
}
