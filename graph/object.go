package graph

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/obsgraph"
	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/vocab"
)

// Object is one node of the observable graph. Exactly one of ID and
// IDRef is set: an object either carries its own identity (and usually
// a payload), or names another object defined elsewhere.
type Object struct {
	// ID is the object's own identifier. Immutable once assigned.
	ID string

	// IDRef names another object instead of defining this one.
	IDRef string

	// Properties is the entity payload. Nil for references and for
	// objects whose payload lives only in the store.
	Properties *entity.Entity

	// Related are the objects hanging off this one.
	Related []*RelatedObject
}

// NewObject creates an object with a fresh identifier and registers it
// in the store. The identifier prefix is the payload's type name, so
// ids read like FileObjectType-{uuid}. A nil generator falls back to
// random UUIDs; a nil store skips registration.
func NewObject(ctx context.Context, store ident.Store, gen ident.Generator, props *entity.Entity) (*Object, error) {
	if gen == nil {
		gen = ident.UUIDGenerator{}
	}
	prefix := ""
	if props != nil {
		prefix = props.TypeName()
	}

	o := &Object{
		ID:         gen.NewID(prefix),
		Properties: props,
	}
	if store != nil {
		if err := store.Put(ctx, o.ID, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// NewObjectRef creates an object that names another object by
// identifier and carries no payload of its own.
func NewObjectRef(idref string) (*Object, error) {
	if idref == "" {
		return nil, fmt.Errorf("graph: reference requires an identifier")
	}
	return &Object{IDRef: idref}, nil
}

// GetProperties returns the object's payload. For references it
// resolves the idref against the store; an identifier the store does
// not hold surfaces as obsgraph.ErrCacheMiss, never as a substitute
// payload.
func (o *Object) GetProperties(ctx context.Context, store ident.Store) (*entity.Entity, error) {
	const op = "Object.GetProperties"

	if o.Properties != nil {
		return o.Properties, nil
	}
	if o.IDRef == "" {
		return nil, nil
	}
	if store == nil {
		return nil, obsgraph.NewCacheMissError(op, o.IDRef)
	}

	v, err := store.Get(ctx, o.IDRef)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case *Object:
		return t.Properties, nil
	case *RelatedObject:
		return t.Properties, nil
	case *entity.Entity:
		return t, nil
	default:
		return nil, obsgraph.NewStorageError(op,
			fmt.Errorf("identifier %s resolved to %T, not an object", o.IDRef, v))
	}
}

// AddRelated attaches a new related object built from the payload. With
// inline true the payload travels embedded in this object's
// serialization; otherwise a standalone object is created and only its
// identifier is referenced here.
func (o *Object) AddRelated(ctx context.Context, store ident.Store, gen ident.Generator, props *entity.Entity, rel vocab.String, inline bool) (*RelatedObject, error) {
	var r *RelatedObject

	if inline {
		var err error
		r, err = NewInlineRelated(ctx, store, gen, props, rel)
		if err != nil {
			return nil, err
		}
	} else {
		target, err := NewObject(ctx, store, gen, props)
		if err != nil {
			return nil, err
		}
		r, err = NewReference(target, rel)
		if err != nil {
			return nil, err
		}
	}

	o.Related = append(o.Related, r)
	return r, nil
}

// Equal reports deep equality of identity, payload, and related
// objects. Relationship labels compare by value; the vocabulary name is
// presentation metadata and does not participate.
func (o *Object) Equal(other *Object) bool {
	if o == nil || other == nil {
		return o == other
	}
	if o.ID != other.ID || o.IDRef != other.IDRef {
		return false
	}
	if (o.Properties == nil) != (other.Properties == nil) {
		return false
	}
	if o.Properties != nil && !o.Properties.Equal(other.Properties) {
		return false
	}
	if len(o.Related) != len(other.Related) {
		return false
	}
	for i := range o.Related {
		if !o.Related[i].Equal(other.Related[i]) {
			return false
		}
	}
	return true
}
