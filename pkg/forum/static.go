package forum

import (
	"context"
	"fmt"
)

// StaticLookup serves a fixed set of entities from memory.
// It is safe for concurrent use because it is never mutated after construction.
type StaticLookup struct {
	entities map[int64]Entity
	kind     Kind
}

// NewStaticLookup creates a lookup of the given kind over entities.
// Each entity's Kind is overwritten with kind.
func NewStaticLookup(kind Kind, entities ...Entity) *StaticLookup {
	m := make(map[int64]Entity, len(entities))
	for _, e := range entities {
		e.Kind = kind
		m[e.ID] = e
	}
	return &StaticLookup{kind: kind, entities: m}
}

// Kind returns the entity space served by the lookup.
func (l *StaticLookup) Kind() Kind {
	return l.kind
}

// Lookup returns the entity with the given id or ErrNotFound.
func (l *StaticLookup) Lookup(ctx context.Context, id int64) (Entity, error) {
	if err := ctx.Err(); err != nil {
		return Entity{}, err
	}
	e, ok := l.entities[id]
	if !ok {
		return Entity{}, fmt.Errorf("%s %d: %w", l.kind, id, ErrNotFound)
	}
	return e, nil
}

var _ Lookup = (*StaticLookup)(nil)
