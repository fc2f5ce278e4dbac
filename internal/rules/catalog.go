package rules

import (
	"errors"
	"sort"
	"sync"
)

// ErrRuleNotFound is returned when a rule id is not in a catalog
var ErrRuleNotFound = errors.New("rule not found")

// Catalog names.
const (
	CatalogPerElement = "per-element"
	CatalogContext    = "context"
)

// Catalog is an ordered, read-only collection of rules with a by-id index
type Catalog struct {
	name  string
	rules []Rule
	byID  map[string]*Rule
	mu    sync.RWMutex
}

// NewCatalog creates a catalog from rules in declaration order
func NewCatalog(name string, rules []Rule) *Catalog {
	c := &Catalog{name: name}
	c.build(rules)
	return c
}

// build sets the catalog contents and the index
func (c *Catalog) build(rules []Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules = rules
	c.byID = make(map[string]*Rule, len(rules))
	for i := range c.rules {
		r := &c.rules[i]
		c.byID[r.ID()] = r
	}
}

// Name returns the catalog name
func (c *Catalog) Name() string {
	return c.name
}

// Rules returns the rules in declaration order. Callers must not modify
// the returned slice.
func (c *Catalog) Rules() []Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rules
}

// Get returns a copy of the rule with the given id
func (c *Catalog) Get(id string) (Rule, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.byID[id]
	if !ok {
		return Rule{}, ErrRuleNotFound
	}
	return *r, nil
}

// Contains reports whether a rule id is present
func (c *Catalog) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.byID[id]
	return ok
}

// Count returns the number of rules
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

// IDs returns the sorted rule ids
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Catalogs bundles the two catalogs used by threat generation
type Catalogs struct {
	PerElement *Catalog
	Context    *Catalog
}

// Get looks a rule up in both catalogs
func (cs *Catalogs) Get(id string) (Rule, string, error) {
	for _, c := range []*Catalog{cs.PerElement, cs.Context} {
		if c == nil {
			continue
		}
		if r, err := c.Get(id); err == nil {
			return r, c.Name(), nil
		}
	}
	return Rule{}, "", ErrRuleNotFound
}

// ByName returns the catalog with the given name, or nil
func (cs *Catalogs) ByName(name string) *Catalog {
	switch name {
	case CatalogPerElement:
		return cs.PerElement
	case CatalogContext:
		return cs.Context
	default:
		return nil
	}
}
