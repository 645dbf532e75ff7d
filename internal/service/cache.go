package service

import (
	"sync"

	"github.com/smartcity/aqi-forecast/internal/domain"
)

// computation is the date-dependent part of a forecast. Models are
// deterministic, so it can be reused for every request on the same date.
type computation struct {
	features       domain.DateFeatures
	concentrations domain.PredictionResult
	subIndices     domain.SubIndexResult
	result         domain.AQIResult
	outOfRange     []domain.Pollutant
}

func (c computation) clone() computation {
	out := c
	out.concentrations = make(domain.PredictionResult, len(c.concentrations))
	for k, v := range c.concentrations {
		out.concentrations[k] = v
	}
	out.subIndices = make(domain.SubIndexResult, len(c.subIndices))
	for k, v := range c.subIndices {
		out.subIndices[k] = v
	}
	if c.outOfRange != nil {
		out.outOfRange = append([]domain.Pollutant(nil), c.outOfRange...)
	}
	return out
}

// lruCache is a simple thread-safe LRU cache of computations keyed by date.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[domain.DateFeatures]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   domain.DateFeatures
	value computation
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[domain.DateFeatures]*entry),
	}
}

func (c *lruCache) get(key domain.DateFeatures) (computation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return computation{}, false
	}
	c.moveToFront(e)
	return e.value.clone(), true
}

func (c *lruCache) put(key domain.DateFeatures, value computation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value = value.clone()
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
