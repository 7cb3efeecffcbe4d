// internal/crm/schema.go
package crm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dangerclosesec/onboarding/internal/cache"
)

// Schema indexes a location's custom fields by normalised name and by field key.
type Schema struct {
	byName map[string]CustomField
}

func NewSchema(fields []CustomField) *Schema {
	s := &Schema{byName: make(map[string]CustomField, len(fields)*2)}
	for _, f := range fields {
		if f.FieldKey != "" {
			key := f.FieldKey
			if i := strings.LastIndex(key, "."); i >= 0 {
				key = key[i+1:]
			}
			s.byName[normaliseFieldName(key)] = f
		}
	}
	// Display names win over field keys when both normalise to the same value.
	for _, f := range fields {
		s.byName[normaliseFieldName(f.Name)] = f
	}
	return s
}

// Lookup finds a field by display name or key, ignoring case, spaces and
// punctuation: "Pillar 1 Desc", "pillar_1_desc" and "contact.pillar_1_desc"
// all match the same field.
func (s *Schema) Lookup(name string) (CustomField, bool) {
	f, ok := s.byName[normaliseFieldName(name)]
	return f, ok
}

func (s *Schema) Len() int {
	return len(s.byName)
}

func normaliseFieldName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type schemaFetcher func(ctx context.Context, locationID string) ([]CustomField, error)

// SchemaCache keeps fetched schemas per location and token for a TTL. Entries
// are refreshed on expiry or after Invalidate.
type SchemaCache struct {
	store       *cache.InMemoryCache
	ttl         time.Duration
	tokenPrefix string
	fetch       schemaFetcher

	mu sync.Mutex
}

func newSchemaCache(ttl time.Duration, token string, fetch schemaFetcher) *SchemaCache {
	prefix := token
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return &SchemaCache{
		store:       cache.NewInMemoryCache(ttl, time.Minute),
		ttl:         ttl,
		tokenPrefix: prefix,
		fetch:       fetch,
	}
}

func (c *SchemaCache) key(locationID string) string {
	return locationID + ":" + c.tokenPrefix
}

// Get returns the cached schema for locationID, fetching it when missing.
func (c *SchemaCache) Get(ctx context.Context, locationID string) (*Schema, error) {
	// Serialise fetches so concurrent misses hit the API once.
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.store.Get(ctx, c.key(locationID)); ok {
		return v.(*Schema), nil
	}

	fields, err := c.fetch(ctx, locationID)
	if err != nil {
		return nil, err
	}

	schema := NewSchema(fields)
	c.store.SetWithTTL(ctx, c.key(locationID), schema, c.ttl)
	return schema, nil
}

// Invalidate drops the cached schema of locationID.
func (c *SchemaCache) Invalidate(locationID string) {
	c.store.Delete(context.Background(), c.key(locationID))
}
