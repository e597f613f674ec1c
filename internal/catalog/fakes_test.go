package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rshade/ec2-instance-browser/internal/dataset"
)

var errBoom = errors.New("boom")

// fakeSource is an in-memory dataset. Region requests for a type listed in
// gates block until the gate channel is closed.
type fakeSource struct {
	instances   []dataset.InstanceRow
	disks       []dataset.DiskRow
	regions     map[string][]string
	instanceErr error
	diskErr     error
	regionErr   map[string]error

	// honorCancel makes gated region requests return early on cancellation.
	honorCancel bool

	// calls counts every query that reached the source.
	calls atomic.Int64

	mu      sync.Mutex
	gates   map[string]chan struct{}
	started chan string
}

func (f *fakeSource) ListInstances(ctx context.Context) ([]dataset.InstanceRow, error) {
	f.calls.Add(1)
	if f.instanceErr != nil {
		return nil, f.instanceErr
	}
	return f.instances, nil
}

func (f *fakeSource) ListDisks(ctx context.Context) ([]dataset.DiskRow, error) {
	f.calls.Add(1)
	if f.diskErr != nil {
		return nil, f.diskErr
	}
	return f.disks, nil
}

func (f *fakeSource) ListRegions(ctx context.Context, instanceType string) ([]string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	gate := f.gates[instanceType]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- instanceType
	}
	if gate != nil {
		if f.honorCancel {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		} else {
			// Ignore cancellation so a stale result is still delivered.
			<-gate
		}
	}
	if err := f.regionErr[instanceType]; err != nil {
		return nil, err
	}
	return f.regions[instanceType], nil
}

func (f *fakeSource) gate(instanceType string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gates == nil {
		f.gates = make(map[string]chan struct{})
	}
	ch := make(chan struct{})
	f.gates[instanceType] = ch
	return ch
}
