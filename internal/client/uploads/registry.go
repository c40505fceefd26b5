// Package uploads tracks in-flight upload requests: each task is independently
// cancelable and progress-reporting, and a finished upload announces the new
// file on the event bus so views can refresh.
package uploads

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/cloudchest/cloudchest-cli/internal/client/api"
	"github.com/cloudchest/cloudchest-cli/internal/client/events"
	"github.com/cloudchest/cloudchest-cli/internal/client/models"
	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

// Uploader is the slice of the API client the registry depends on.
type Uploader interface {
	UploadFile(ctx context.Context, folderCode, fileName, contentType string, size int64, r io.Reader, progress api.ProgressFunc) (*models.File, error)
}

// Task is a read-only snapshot of one tracked upload.
type Task struct {
	ID       string
	FileName string
	Progress int // 0–100, monotonically non-decreasing while the task lives
}

type task struct {
	id       string
	fileName string
	progress int
	cancel   context.CancelFunc
}

// Registry owns the set of live upload tasks. It is the only holder of this
// mutable state; callers interact through task identifiers. Construct one per
// process and inject it wherever uploads are started or displayed.
type Registry struct {
	uploader Uploader
	bus      *events.Bus
	log      logging.Logger

	mu    sync.Mutex
	tasks map[string]*task
	order []string

	wg sync.WaitGroup
}

func NewRegistry(u Uploader, bus *events.Bus, log logging.Logger) *Registry {
	return &Registry{
		uploader: u,
		bus:      bus,
		log:      log,
		tasks:    make(map[string]*task),
	}
}

// Start registers a new upload task and launches the transfer. The task is
// inserted before the transfer goroutine runs, so a progress callback can
// never observe an unregistered identifier. The returned snapshot is
// immediate; completion is reported through the event bus. src is closed by
// the registry once the transfer ends, whichever way it ends.
func (r *Registry) Start(ctx context.Context, folderCode, fileName, contentType string, size int64, src io.ReadCloser) Task {
	id := uuid.NewString()
	uctx, cancel := context.WithCancel(ctx)

	t := &task{id: id, fileName: fileName, cancel: cancel}
	r.mu.Lock()
	r.tasks[id] = t
	r.order = append(r.order, id)
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		defer src.Close()

		file, err := r.uploader.UploadFile(uctx, folderCode, fileName, contentType, size, src, func(sent, total int64) {
			r.setProgress(id, sent, total)
		})
		if err != nil {
			// The caller initiated cancellation, so it is not surfaced.
			if errors.Is(err, context.Canceled) {
				r.log.Debug(context.Background(), "upload cancelled", "id", id, "file", fileName)
			} else {
				r.log.Error(context.Background(), "upload failed", "id", id, "file", fileName, "err", err)
			}
			r.remove(id)
			return
		}

		// A success that arrives for an identifier no longer tracked was
		// cancelled in the meantime; dropping it keeps cancellation final.
		if !r.remove(id) {
			return
		}
		r.bus.Publish(events.Event{Kind: events.FileAdded, File: file})
	}()

	return Task{ID: id, FileName: fileName}
}

// Cancel aborts the task's transfer and forgets it. Unknown identifiers are
// a no-op: the task may simply have completed already.
func (r *Registry) Cancel(id string) {
	r.mu.Lock()
	t, ok := r.tasks[id]
	if ok {
		delete(r.tasks, id)
		r.dropOrder(id)
	}
	r.mu.Unlock()

	if ok {
		t.cancel()
	}
}

// Active returns a snapshot of the live tasks in start order.
func (r *Registry) Active() []Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Task, 0, len(r.tasks))
	for _, id := range r.order {
		if t, ok := r.tasks[id]; ok {
			out = append(out, Task{ID: t.id, FileName: t.fileName, Progress: t.progress})
		}
	}
	return out
}

// Wait blocks until every launched transfer goroutine has finished. Used on
// shutdown and in tests; new tasks may still be started concurrently.
func (r *Registry) Wait() {
	r.wg.Wait()
}

// setProgress applies a progress report. Reports for removed identifiers are
// dropped, and progress never decreases: a late or reordered callback cannot
// roll a task backwards.
func (r *Registry) setProgress(id string, sent, total int64) {
	if total <= 0 {
		return // unknown size, stays at 0 until completion
	}
	p := int(sent * 100 / total)
	if p > 100 {
		p = 100
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return
	}
	if p > t.progress {
		t.progress = p
	}
}

func (r *Registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return false
	}
	delete(r.tasks, id)
	r.dropOrder(id)
	return true
}

// dropOrder must be called with r.mu held.
func (r *Registry) dropOrder(id string) {
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			return
		}
	}
}
