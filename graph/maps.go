package graph

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/obsgraph"
	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/vocab"
)

// Keys of the map (JSON/YAML) object envelope.
const (
	idKey           = "id"
	idrefKey        = "idref"
	propertiesKey   = "properties"
	relatedKey      = "related_objects"
	relationshipKey = "relationship"
)

// ToMap serializes the object envelope as a nested mapping, mirroring
// ToNode: references carry only their idref (plus the relationship when
// the object is an edge), defined objects carry id, properties with
// discriminator, and related objects.
func (o *Object) ToMap(reg *entity.Registry) (map[string]any, error) {
	m := make(map[string]any)

	if o.IDRef != "" {
		m[idrefKey] = o.IDRef
	} else {
		if o.ID != "" {
			m[idKey] = o.ID
		}
		if o.Properties != nil {
			props, err := o.Properties.ToMap(reg)
			if err != nil {
				return nil, err
			}
			props[entity.DiscriminatorKey] = o.Properties.TypeName()
			m[propertiesKey] = props
		}
	}

	if len(o.Related) > 0 {
		rels := make([]any, 0, len(o.Related))
		for _, r := range o.Related {
			rm, err := r.toMap(reg)
			if err != nil {
				return nil, err
			}
			rels = append(rels, rm)
		}
		m[relatedKey] = rels
	}
	return m, nil
}

func (r *RelatedObject) toMap(reg *entity.Registry) (map[string]any, error) {
	m, err := r.Object.ToMap(reg)
	if err != nil {
		return nil, err
	}
	if !r.Relationship.IsZero() {
		m[relationshipKey] = r.Relationship.Value
	}
	return m, nil
}

// FromMap parses an object envelope from its map form. As with
// FromNode, every object that declares an id is registered in the store
// when one is given.
func FromMap(ctx context.Context, reg *entity.Registry, store ident.Store, m map[string]any) (*Object, error) {
	o := &Object{}
	if err := o.fromMap(ctx, reg, store, m); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Object) fromMap(ctx context.Context, reg *entity.Registry, store ident.Store, m map[string]any) error {
	const op = "Object.FromMap"

	if idref, _ := m[idrefKey].(string); idref != "" {
		o.IDRef = idref
	} else {
		o.ID, _ = m[idKey].(string)
		if raw, ok := m[propertiesKey]; ok && raw != nil {
			props, ok := raw.(map[string]any)
			if !ok {
				return obsgraph.NewMalformedValueError(op, propertiesKey, fmt.Sprintf("%v", raw),
					0, fmt.Errorf("%w: expected mapping, got %T", obsgraph.ErrMalformedValue, raw))
			}
			e, err := parsePropertiesMap(reg, props)
			if err != nil {
				return err
			}
			o.Properties = e
		}
	}

	if raw, ok := m[relatedKey]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return obsgraph.NewMalformedValueError(op, relatedKey, fmt.Sprintf("%v", raw),
				0, fmt.Errorf("%w: expected list, got %T", obsgraph.ErrMalformedValue, raw))
		}
		for _, item := range items {
			rm, ok := item.(map[string]any)
			if !ok {
				return obsgraph.NewMalformedValueError(op, relatedKey, fmt.Sprintf("%v", item),
					0, fmt.Errorf("%w: expected mapping, got %T", obsgraph.ErrMalformedValue, item))
			}
			r, err := relatedFromMap(ctx, reg, store, rm)
			if err != nil {
				return err
			}
			o.Related = append(o.Related, r)
		}
	}

	if store != nil && o.ID != "" {
		if err := store.Put(ctx, o.ID, o); err != nil {
			return err
		}
	}
	return nil
}

func parsePropertiesMap(reg *entity.Registry, m map[string]any) (*entity.Entity, error) {
	const op = "Object.FromMap"

	disc, _ := m[entity.DiscriminatorKey].(string)
	ctor, err := reg.ResolveRoot(disc)
	if err != nil {
		if disc == "" {
			return nil, obsgraph.NewMissingDiscriminatorError(op, propertiesKey, 0)
		}
		return nil, err
	}

	e := ctor()
	if err := e.FromMap(reg, m); err != nil {
		return nil, err
	}
	return e, nil
}

func relatedFromMap(ctx context.Context, reg *entity.Registry, store ident.Store, m map[string]any) (*RelatedObject, error) {
	r := &RelatedObject{}
	if err := r.Object.fromMap(ctx, reg, store, m); err != nil {
		return nil, err
	}
	r.inline = r.IDRef == ""

	if rel, _ := m[relationshipKey].(string); rel != "" {
		r.Relationship = vocab.Relationship(rel)
	}
	return r, nil
}
