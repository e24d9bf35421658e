package settings

import "sync"

// Store holds the current settings of an application session and notifies
// subscribers about changes. All methods are safe for concurrent use.
//
// Subscribers are called synchronously, after the store's lock has been
// released, with the new settings value.
type Store struct {
	mx          sync.RWMutex
	current     Settings
	subscribers map[int]func(Settings)
	nextID      int
}

// NewStore creates a store holding initial settings.
func NewStore(initial Settings) *Store {
	return &Store{
		current:     initial,
		subscribers: make(map[int]func(Settings)),
	}
}

// Get returns a snapshot of the current settings.
func (st *Store) Get() Settings {
	st.mx.RLock()
	defer st.mx.RUnlock()
	return st.current
}

// Set replaces the current settings.
func (st *Store) Set(s Settings) {
	st.mx.Lock()
	st.current = s
	subs := st.snapshotSubscribers()
	st.mx.Unlock()
	notify(subs, s)
}

// Update applies a modification to the current settings atomically and
// returns the result.
func (st *Store) Update(modify func(*Settings)) Settings {
	st.mx.Lock()
	s := st.current
	modify(&s)
	st.current = s
	subs := st.snapshotSubscribers()
	st.mx.Unlock()
	notify(subs, s)
	return s
}

// Reset restores the default settings.
func (st *Store) Reset() {
	tracer().Debugf("settings reset to defaults")
	st.Set(Defaults())
}

// Subscribe registers a callback for settings changes. The returned function
// cancels the subscription.
func (st *Store) Subscribe(callback func(Settings)) (cancel func()) {
	st.mx.Lock()
	id := st.nextID
	st.nextID++
	st.subscribers[id] = callback
	st.mx.Unlock()
	return func() {
		st.mx.Lock()
		delete(st.subscribers, id)
		st.mx.Unlock()
	}
}

func (st *Store) snapshotSubscribers() []func(Settings) {
	subs := make([]func(Settings), 0, len(st.subscribers))
	for _, cb := range st.subscribers {
		subs = append(subs, cb)
	}
	return subs
}

func notify(subs []func(Settings), s Settings) {
	for _, cb := range subs {
		cb(s)
	}
}
