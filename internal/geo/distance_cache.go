// Package geo provides a bounded memo table for great-circle distances.
package geo

import (
	"container/list"
	"sync"

	"github.com/UnknownOlympus/airfinder/internal/models"
)

// DefaultCacheSize is the number of distances kept when no size is configured.
const DefaultCacheSize = 128

// pairKey identifies an unordered pair of coordinates.
type pairKey struct {
	a, b models.Coordinates
}

func newPairKey(a, b models.Coordinates) pairKey {
	if b.Longitude < a.Longitude || (b.Longitude == a.Longitude && b.Latitude < a.Latitude) {
		a, b = b, a
	}

	return pairKey{a: a, b: b}
}

type entry struct {
	key      pairKey
	distance float64
}

// Recorder receives cache lookups; it is satisfied by the application metrics.
type Recorder interface {
	CacheLookup(hit bool)
}

// DistanceCache memoizes Coordinates.DistanceTo for a fixed number of coordinate pairs,
// evicting the oldest inserted pair first. It is safe for concurrent use.
type DistanceCache struct {
	mu       sync.Mutex
	maxSize  int
	entries  map[pairKey]*list.Element
	order    *list.List // front is the oldest insertion
	recorder Recorder
}

// NewDistanceCache creates a cache holding at most maxSize distances. A non-positive
// size falls back to DefaultCacheSize. recorder may be nil.
func NewDistanceCache(maxSize int, recorder Recorder) *DistanceCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	return &DistanceCache{
		maxSize:  maxSize,
		entries:  make(map[pairKey]*list.Element, maxSize),
		order:    list.New(),
		recorder: recorder,
	}
}

// Distance returns the great-circle distance in meters between a and b, computing and
// storing it on a miss. Distance(a, b) and Distance(b, a) share one entry. Pairs with a
// NaN or infinite component never compare equal as keys and are not stored.
func (dc *DistanceCache) Distance(a, b models.Coordinates) float64 {
	if !a.IsFinite() || !b.IsFinite() {
		dc.record(false)
		return a.DistanceTo(b)
	}

	key := newPairKey(a, b)

	dc.mu.Lock()
	if elem, ok := dc.entries[key]; ok {
		dc.mu.Unlock()
		dc.record(true)
		return elem.Value.(*entry).distance
	}
	dc.mu.Unlock()
	dc.record(false)

	distance := key.a.DistanceTo(key.b)

	dc.mu.Lock()
	defer dc.mu.Unlock()

	// Another caller may have stored the pair meanwhile.
	if _, ok := dc.entries[key]; ok {
		return distance
	}
	if dc.order.Len() >= dc.maxSize {
		oldest := dc.order.Front()
		dc.order.Remove(oldest)
		delete(dc.entries, oldest.Value.(*entry).key)
	}
	dc.entries[key] = dc.order.PushBack(&entry{key: key, distance: distance})

	return distance
}

// Len returns the number of memoized distances.
func (dc *DistanceCache) Len() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	return len(dc.entries)
}

func (dc *DistanceCache) record(hit bool) {
	if dc.recorder != nil {
		dc.recorder.CacheLookup(hit)
	}
}
