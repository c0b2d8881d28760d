package graph

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/vocab"
)

// RelatedObject is an edge of the graph: an object hanging off its
// parent with a relationship label. Whether the node is inline or a
// reference is decided at construction and never changes.
type RelatedObject struct {
	Object

	// Relationship labels the edge (for example "Contains").
	Relationship vocab.String

	inline bool
}

// Inline reports whether the node embeds its payload where it appears.
// Reference nodes serialize only their idref and relationship.
func (r *RelatedObject) Inline() bool {
	return r.inline
}

// NewInlineRelated creates a related object that owns its payload. Like
// NewObject it assigns a fresh identifier and registers itself in the
// store, so other parts of the document can reference it.
func NewInlineRelated(ctx context.Context, store ident.Store, gen ident.Generator, props *entity.Entity, rel vocab.String) (*RelatedObject, error) {
	if gen == nil {
		gen = ident.UUIDGenerator{}
	}
	prefix := ""
	if props != nil {
		prefix = props.TypeName()
	}

	r := &RelatedObject{
		Object: Object{
			ID:         gen.NewID(prefix),
			Properties: props,
		},
		Relationship: rel,
		inline:       true,
	}
	if store != nil {
		if err := store.Put(ctx, r.ID, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewReference creates a related object that names the target by
// identifier. The payload is not duplicated; readers resolve it through
// the store.
func NewReference(target *Object, rel vocab.String) (*RelatedObject, error) {
	if target == nil || target.ID == "" {
		return nil, fmt.Errorf("graph: reference target has no identifier")
	}
	return &RelatedObject{
		Object:       Object{IDRef: target.ID},
		Relationship: rel,
		inline:       false,
	}, nil
}

// Equal reports deep equality of the edge: state, relationship value,
// and the underlying object.
func (r *RelatedObject) Equal(other *RelatedObject) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.inline != other.inline {
		return false
	}
	if r.Relationship.Value != other.Relationship.Value {
		return false
	}
	return r.Object.Equal(&other.Object)
}
