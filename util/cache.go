package util

import (
	"sort"
	"sync"
)

// Cache is a data store of the last published value per vehicle and key
type Cache struct {
	sync.Mutex
	val map[string]Param
}

// NewCache creates cache
func NewCache() *Cache {
	return &Cache{
		val: make(map[string]Param),
	}
}

// Run adds input channel's values to cache
func (c *Cache) Run(in <-chan Param) {
	log := NewLogger("cache")

	for p := range in {
		log.TRACE.Printf("%s: %v", p.UniqueID(), p.Val)
		c.Add(p.UniqueID(), p)
	}
}

// All provides a copy of the cached values sorted by unique id
func (c *Cache) All() []Param {
	c.Lock()
	defer c.Unlock()

	copy := make([]Param, 0, len(c.val))
	for _, val := range c.val {
		copy = append(copy, val)
	}

	sort.Slice(copy, func(i, j int) bool {
		return copy[i].UniqueID() < copy[j].UniqueID()
	})

	return copy
}

// Vehicle provides a copy of the cached values of a single vehicle
func (c *Cache) Vehicle(vin string) map[string]interface{} {
	c.Lock()
	defer c.Unlock()

	res := make(map[string]interface{})
	for _, p := range c.val {
		if p.Vehicle == vin {
			res[p.Key] = p.Val
		}
	}

	return res
}

// Add entry to cache
func (c *Cache) Add(key string, param Param) {
	c.Lock()
	defer c.Unlock()

	c.val[key] = param
}

// Get entry from cache
func (c *Cache) Get(key string) Param {
	c.Lock()
	defer c.Unlock()

	if val, ok := c.val[key]; ok {
		return val
	}

	return Param{}
}
