// Package catalog owns the runtime registry of model kinds.
//
// Ownership boundary:
// - kind id format
// - registration and lookup by id
// - deterministic listing
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/danmuck/modelcodec/internal/model"
)

var (
	ErrKindExists   = errors.New("catalog: kind already exists")
	ErrKindNil      = errors.New("catalog: kind is nil")
	ErrInvalidID    = errors.New("catalog: invalid kind id")
	ErrKindNotFound = errors.New("catalog: kind not found")
)

// Entry describes one registered kind.
type Entry struct {
	ID            string   `json:"id"`
	Model         string   `json:"model"`
	DefaultFormat string   `json:"default_format"`
	Fields        []string `json:"fields"`
}

// Catalog stores model kinds by stable identifier.
type Catalog struct {
	mu    sync.RWMutex
	items map[string]model.Kind
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{items: make(map[string]model.Kind)}
}

// Register adds kind under id.
func (c *Catalog) Register(id string, kind model.Kind) error {
	if kind == nil {
		return ErrKindNil
	}
	if !isValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; ok {
		return fmt.Errorf("%w: %q", ErrKindExists, id)
	}
	c.items[id] = kind
	return nil
}

// Resolve returns the kind registered under id.
func (c *Catalog) Resolve(id string) (model.Kind, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	kind, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrKindNotFound, id)
	}
	return kind, nil
}

// List returns deterministic entry ordering by id.
func (c *Catalog) List() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]Entry, 0, len(c.items))
	for id, kind := range c.items {
		list = append(list, Entry{
			ID:            id,
			Model:         kind.Name(),
			DefaultFormat: kind.DefaultFormat(),
			Fields:        kind.Fields(),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

func isValidID(id string) bool {
	if id == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if i == 0 || i == len(id)-1 {
			if isSep {
				return false
			}
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
