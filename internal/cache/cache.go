// Package cache is a byte-bounded LRU used for full note bodies and rendered
// previews.
package cache

import (
	"container/list"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrUnhashableKey = errors.New("cache: key is not comparable")
	ErrTooLarge      = errors.New("cache: entry exceeds capacity")
)

// entryOverhead approximates the list element, map slot and interface
// headers held for every entry.
const entryOverhead = 64

type Entry struct {
	Key   any
	Value any
}

type Cache struct {
	mu       sync.Mutex
	maxBytes int64
	size     int64
	ll       *list.List
	items    map[any]*list.Element
}

func New(maxMB int64) (*Cache, error) {
	if maxMB <= 0 {
		return nil, fmt.Errorf("cache: size must be positive, got %d MB", maxMB)
	}
	return &Cache{
		maxBytes: maxMB * 1024 * 1024,
		ll:       list.New(),
		items:    make(map[any]*list.Element),
	}, nil
}

func (c *Cache) Get(key any) (any, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ele, hit := c.items[key]
	if !hit {
		return nil, false, nil
	}
	c.ll.MoveToFront(ele)
	return ele.Value.(*Entry).Value, true, nil
}

func (c *Cache) Put(key, value any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	e := &Entry{Key: key, Value: value}
	n := int64(sizeof(e))
	if n > c.maxBytes {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, hit := c.items[key]; hit {
		old := ele.Value.(*Entry)
		c.size += n - int64(sizeof(old))
		ele.Value = e
		c.ll.MoveToFront(ele)
	} else {
		c.items[key] = c.ll.PushFront(e)
		c.size += n
	}

	for c.size > c.maxBytes {
		c.removeOldest()
	}
	return nil
}

func (c *Cache) Remove(key any) {
	if checkKey(key) != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// SizeOf reports the estimated bytes held.
func (c *Cache) SizeOf() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

func (c *Cache) removeOldest() {
	if ele := c.ll.Back(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *Cache) removeElement(ele *list.Element) {
	c.ll.Remove(ele)
	e := ele.Value.(*Entry)
	delete(c.items, e.Key)
	c.size -= int64(sizeof(e))
}

func checkKey(key any) error {
	if key == nil {
		return ErrUnhashableKey
	}
	if !reflect.TypeOf(key).Comparable() {
		return ErrUnhashableKey
	}
	return nil
}

func sizeof(e *Entry) int {
	return entryOverhead + valueSize(e.Key) + valueSize(e.Value)
}

func valueSize(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		return len(x)
	case []byte:
		return len(x)
	case fmt.Stringer:
		return len(x.String())
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		n := 0
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Field(i)
			if f.Kind() == reflect.String {
				n += f.Len()
			} else {
				n += int(f.Type().Size())
			}
		}
		return n
	case reflect.Pointer:
		if rv.IsNil() {
			return 0
		}
		return int(rv.Type().Size()) + valueSize(rv.Elem().Interface())
	}
	return int(rv.Type().Size())
}
