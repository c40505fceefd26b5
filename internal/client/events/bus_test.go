package events

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

func newBus() *Bus {
	return NewBus(logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	b := newBus()

	var got []int
	b.Subscribe(FileAdded, func(Event) { got = append(got, 1) })
	b.Subscribe(FileAdded, func(Event) { got = append(got, 2) })
	b.Subscribe(FileAdded, func(Event) { got = append(got, 3) })

	b.Publish(Event{Kind: FileAdded})

	require.Equal(t, []int{1, 2, 3}, got)
}

func TestBus_HandlerPanicDoesNotStopDelivery(t *testing.T) {
	b := newBus()

	var got []int
	b.Subscribe(FileUpdated, func(Event) { got = append(got, 1) })
	b.Subscribe(FileUpdated, func(Event) { panic("boom") })
	b.Subscribe(FileUpdated, func(Event) { got = append(got, 3) })

	require.NotPanics(t, func() { b.Publish(Event{Kind: FileUpdated}) })
	require.Equal(t, []int{1, 3}, got)
}

func TestBus_UnsubscribedHandlerNeverReceives(t *testing.T) {
	b := newBus()

	calls := 0
	sub := b.Subscribe(FileTrashed, func(Event) { calls++ })

	b.Publish(Event{Kind: FileTrashed})
	require.Equal(t, 1, calls)

	b.Unsubscribe(sub)
	b.Publish(Event{Kind: FileTrashed})
	require.Equal(t, 1, calls)

	// Removing twice is a no-op.
	require.NotPanics(t, func() { b.Unsubscribe(sub) })
}

func TestBus_KindsAreIsolated(t *testing.T) {
	b := newBus()

	fileCalls, folderCalls := 0, 0
	b.Subscribe(FileAdded, func(Event) { fileCalls++ })
	b.Subscribe(FolderAdded, func(Event) { folderCalls++ })

	b.Publish(Event{Kind: FolderAdded, Folder: &models.Folder{Code: "abc"}})

	require.Equal(t, 0, fileCalls)
	require.Equal(t, 1, folderCalls)
}

func TestBus_PayloadReachesHandler(t *testing.T) {
	b := newBus()

	var got *models.File
	b.Subscribe(FileAdded, func(e Event) { got = e.File })

	f := &models.File{ID: 9, FileName: "a.png"}
	b.Publish(Event{Kind: FileAdded, File: f})

	require.Same(t, f, got)
}

func TestBus_LateSubscriberMissesPastEvents(t *testing.T) {
	b := newBus()

	b.Publish(Event{Kind: FileDeleted})

	calls := 0
	b.Subscribe(FileDeleted, func(Event) { calls++ })
	require.Equal(t, 0, calls)
}
