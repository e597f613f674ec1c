package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Snapshot is a consistent copy of a Browser's state.
type Snapshot struct {
	// List is the instance list fetch.
	List Result[[]InstanceRecord]
	// Query is the current search text.
	Query string
	// Selected is the instance type whose regions are shown, or "".
	Selected string
	// Regions is the region fetch for Selected. It is pending when nothing
	// is selected.
	Regions Result[[]string]
}

// Visible returns the loaded records filtered by Query, or nil while the list
// is pending or failed.
func (s Snapshot) Visible() []InstanceRecord {
	records, ok := s.List.Value()
	if !ok {
		return nil
	}
	return Filter(records, s.Query)
}

// regionRequest tags a region fetch with the selection it was issued for.
type regionRequest struct {
	id           string
	instanceType string
}

// Browser holds the state a list/detail view renders from. The list fetch
// and the region fetch are independent: a failure in one never clears the
// other. Region results are applied only while the request that produced
// them still matches the current selection, so a slow response for an
// earlier selection cannot overwrite a newer one.
type Browser struct {
	loader   *Loader
	resolver *RegionResolver
	logger   zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu            sync.Mutex
	closed        bool
	list          Result[[]InstanceRecord]
	query         string
	current       regionRequest
	regions       Result[[]string]
	cancelRegions context.CancelFunc
	onChange      func(Snapshot)
}

// NewBrowser creates a Browser. Fetches run until Close is called.
func NewBrowser(loader *Loader, resolver *RegionResolver, logger zerolog.Logger) *Browser {
	ctx, cancel := context.WithCancel(context.Background())
	return &Browser{
		loader:   loader,
		resolver: resolver,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// OnChange registers fn to be called with a fresh snapshot after every
// applied state change. fn runs on the goroutine that made the change and
// must not call back into the Browser's mutating methods.
func (b *Browser) OnChange(fn func(Snapshot)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onChange = fn
}

// Load starts the instance list fetch. The list is pending until it completes.
func (b *Browser) Load() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.list = Pending[[]InstanceRecord]()
	b.wg.Add(1)
	b.mu.Unlock()
	b.notify()

	go func() {
		defer b.wg.Done()
		result := b.loader.LoadInstances(b.ctx)
		b.apply(func() bool {
			b.list = result
			return true
		})
	}()
}

// SetQuery changes the search text used by Snapshot.Visible.
func (b *Browser) SetQuery(query string) {
	b.apply(func() bool {
		b.query = query
		return true
	})
}

// Select makes instanceType the current selection and starts its region
// fetch. Any in-flight region fetch for an earlier selection is canceled and
// its result discarded.
func (b *Browser) Select(instanceType string) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	if b.cancelRegions != nil {
		b.cancelRegions()
	}
	req := regionRequest{id: uuid.NewString(), instanceType: instanceType}
	ctx, cancel := context.WithCancel(b.ctx)
	b.current = req
	b.regions = Pending[[]string]()
	b.cancelRegions = cancel
	b.wg.Add(1)
	b.mu.Unlock()
	b.notify()

	b.logger.Debug().
		Str("request_id", req.id).
		Str("instance_type", instanceType).
		Msg("region fetch started")

	go func() {
		defer b.wg.Done()
		defer cancel()

		regions, err := b.resolver.Resolve(ctx, req.instanceType)
		applied := b.apply(func() bool {
			if b.current != req {
				return false
			}
			if err != nil {
				b.regions = Failed[[]string](err)
			} else {
				b.regions = Succeeded(regions)
			}
			return true
		})
		if !applied {
			b.logger.Debug().
				Str("request_id", req.id).
				Str("instance_type", req.instanceType).
				Msg("stale region result discarded")
		}
	}()
}

// Snapshot returns the current state.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Wait blocks until every fetch started so far has finished.
func (b *Browser) Wait() {
	b.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to finish. Results that
// arrive afterwards are discarded and the state is left as it was. Close may
// run concurrently with Load and Select; once it returns no new fetch starts.
func (b *Browser) Close() {
	b.mu.Lock()
	b.closed = true
	b.onChange = nil
	b.mu.Unlock()
	b.cancel()
	b.wg.Wait()
}

func (b *Browser) snapshotLocked() Snapshot {
	return Snapshot{
		List:     b.list,
		Query:    b.query,
		Selected: b.current.instanceType,
		Regions:  b.regions,
	}
}

// apply runs fn under the lock unless the browser is closed and notifies
// listeners when fn reports a change.
func (b *Browser) apply(fn func() bool) bool {
	b.mu.Lock()
	if b.closed || !fn() {
		b.mu.Unlock()
		return false
	}
	b.mu.Unlock()
	b.notify()
	return true
}

func (b *Browser) notify() {
	b.mu.Lock()
	fn := b.onChange
	snap := b.snapshotLocked()
	b.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}
