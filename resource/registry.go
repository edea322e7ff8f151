package resource

import (
	"sync"

	"github.com/wippyai/feos-abi/errors"
)

// Registry is a process-wide table of typed, generation-tagged handles.
// It is safe for concurrent use.
type Registry struct {
	entries   []entry
	freeList  []int
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
}

type entry struct {
	value any
	kind  Kind
	gen   uint32
	valid bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries:  make([]entry, 0, 64),
		freeList: make([]int, 0, 16),
	}
}

// Insert stores a value and returns its handle.
func (r *Registry) Insert(kind Kind, value any) Handle {
	r.mu.Lock()
	var idx int
	if n := len(r.freeList); n > 0 {
		idx = r.freeList[n-1]
		r.freeList = r.freeList[:n-1]
	} else {
		r.entries = append(r.entries, entry{})
		idx = len(r.entries) - 1
	}
	e := &r.entries[idx]
	e.value, e.kind, e.valid = value, kind, true
	h := makeHandle(idx, e.gen)
	r.mu.Unlock()

	r.notify(Event{Type: EventCreated, Handle: h, Kind: kind, Value: value})
	return h
}

// Get retrieves the value behind a handle of the given kind.
func (r *Registry) Get(h Handle, kind Kind) (any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, err := r.lookup(h, kind, false)
	if err != nil {
		return nil, err
	}
	return e.value, nil
}

// Release frees a handle. Releasing the null handle is a no-op.
func (r *Registry) Release(h Handle, kind Kind) error {
	if h == 0 {
		return nil
	}

	r.mu.Lock()
	e, err := r.lookup(h, kind, true)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	value := e.value
	e.value = nil
	e.valid = false
	e.gen++
	r.freeList = append(r.freeList, h.index())
	r.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}
	r.notify(Event{Type: EventReleased, Handle: h, Kind: kind, Value: value})
	return nil
}

// lookup resolves a handle; the caller holds mu. A handle released just
// before is a double free when releasing and stale otherwise.
func (r *Registry) lookup(h Handle, kind Kind, releasing bool) (*entry, error) {
	if h == 0 {
		return nil, errors.NilPointer(errors.PhaseBoundary, kind.String()+" handle")
	}
	idx := h.index()
	if idx < 0 || idx >= len(r.entries) {
		return nil, errors.New(errors.PhaseBoundary, errors.KindNotFound).
			Value(uint64(h)).Detail("unknown %s handle %s", kind, h).Build()
	}

	e := &r.entries[idx]
	switch {
	case e.gen == h.generation() && e.valid:
	case releasing && !e.valid && e.gen == h.generation()+1:
		return nil, errors.New(errors.PhaseBoundary, errors.KindDoubleFree).
			Value(uint64(h)).Detail("%s handle %s was already released", kind, h).Build()
	default:
		return nil, errors.New(errors.PhaseBoundary, errors.KindStaleHandle).
			Value(uint64(h)).Detail("%s handle %s is stale", kind, h).Build()
	}

	if e.kind != kind {
		return nil, errors.New(errors.PhaseBoundary, errors.KindTypeMismatch).
			Value(uint64(h)).Detail("handle %s refers to a %s, not a %s", h, e.kind, kind).Build()
	}
	return e, nil
}

// Len returns the number of live handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries) - len(r.freeList)
}

// Each iterates over live handles until fn returns false.
func (r *Registry) Each(fn func(Handle, Kind, any) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, e := range r.entries {
		if e.valid {
			if !fn(makeHandle(i, e.gen), e.kind, e.value) {
				break
			}
		}
	}
}

// Clear releases every live handle.
func (r *Registry) Clear() {
	type live struct {
		h    Handle
		kind Kind
	}
	var handles []live
	r.Each(func(h Handle, kind Kind, _ any) bool {
		handles = append(handles, live{h, kind})
		return true
	})
	for _, l := range handles {
		_ = r.Release(l.h, l.kind)
	}
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	defer r.obsMu.RUnlock()
	for _, o := range r.observers {
		o.OnResourceEvent(e)
	}
}

// Lookup retrieves a handle's value as T.
func Lookup[T any](r *Registry, h Handle, kind Kind) (T, error) {
	var zero T
	v, err := r.Get(h, kind)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.New(errors.PhaseBoundary, errors.KindInternal).
			Value(uint64(h)).Detail("%s handle %s holds %T", kind, h, v).Build()
	}
	return t, nil
}
