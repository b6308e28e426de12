package watermilldb

import (
	"sync"

	"github.com/orbital-network/auction/internal/core/domain"
)

type eventCache struct {
	cache map[string][]domain.Event // id -> events
	lock  *sync.Mutex
}

func newEventCache() *eventCache {
	return &eventCache{
		cache: make(map[string][]domain.Event),
		lock:  &sync.Mutex{},
	}
}

func (c *eventCache) add(id string, events []domain.Event) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.cache[id] = append(c.cache[id], events...)
}

// get returns a copy so handlers never share the backing array with later
// appends.
func (c *eventCache) get(id string) []domain.Event {
	c.lock.Lock()
	defer c.lock.Unlock()

	return append([]domain.Event{}, c.cache[id]...)
}

func (c *eventCache) remove(id string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	delete(c.cache, id)
}
