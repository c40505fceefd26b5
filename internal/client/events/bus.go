// Package events implements the in-process domain event bus: synchronous,
// typed publish/subscribe with no persistence and no replay. Views subscribe
// to refresh themselves after mutations performed elsewhere.
package events

import (
	"context"
	"sync"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

// Kind tags a domain event. The set is closed: one constant per
// file/folder mutation the server can acknowledge.
type Kind int

const (
	FileAdded Kind = iota
	FileUpdated
	FileTrashed
	FileDeleted
	FolderAdded
	FolderUpdated
	FolderTrashed
	FolderDeleted
)

func (k Kind) String() string {
	switch k {
	case FileAdded:
		return "file_added"
	case FileUpdated:
		return "file_updated"
	case FileTrashed:
		return "file_trashed"
	case FileDeleted:
		return "file_deleted"
	case FolderAdded:
		return "folder_added"
	case FolderUpdated:
		return "folder_updated"
	case FolderTrashed:
		return "folder_trashed"
	case FolderDeleted:
		return "folder_deleted"
	}
	return "unknown"
}

// Event carries the kind plus the record the mutation produced. File events
// set File; folder events set Folder. Either may be nil when the server
// acknowledged the mutation without returning a record (e.g. deletes).
type Event struct {
	Kind   Kind
	File   *models.File
	Folder *models.Folder
}

// Handler receives a published event. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
type Handler func(Event)

// Subscription identifies one registered handler for Unsubscribe.
type Subscription struct {
	kind Kind
	id   uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

// Bus fans events out to subscribers. Constructed once per process and
// passed by reference to whichever layer needs it; never torn down.
type Bus struct {
	log logging.Logger

	mu     sync.Mutex
	nextID uint64
	subs   map[Kind][]subscriber
}

func NewBus(log logging.Logger) *Bus {
	return &Bus{log: log, subs: make(map[Kind][]subscriber)}
}

// Subscribe registers fn for events of the given kind and returns a handle
// for later removal. There is no limit on subscribers per kind.
func (b *Bus) Subscribe(kind Kind, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[kind] = append(b.subs[kind], subscriber{id: b.nextID, fn: fn})
	return Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes the handler behind sub. Removing an already-removed
// subscription is a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[sub.kind]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every handler subscribed to e.Kind at call time, in
// subscription order. A panicking handler is logged and does not stop
// delivery to the rest. Late subscribers miss the event.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	list := make([]subscriber, len(b.subs[e.Kind]))
	copy(list, b.subs[e.Kind])
	b.mu.Unlock()

	for _, s := range list {
		b.invoke(s, e)
	}
}

func (b *Bus) invoke(s subscriber, e Event) {
	defer func() {
		if p := recover(); p != nil {
			b.log.Error(context.Background(), "event handler panicked", "kind", e.Kind.String(), "panic", p)
		}
	}()
	s.fn(e)
}
