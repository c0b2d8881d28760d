package entity

import (
	"fmt"

	"github.com/zero-day-ai/obsgraph"
)

// DiscriminatorKey is the map key carrying the polymorphic type
// discriminator, mirroring the xsi:type attribute of the tree shape.
const DiscriminatorKey = "xsi:type"

// ToMap serializes the entity as a nested mapping. Scalars keep their
// native Go values (decimals stay exact as strings), nested entities become
// sub-maps, and lists become []any. Absent optional values and empty lists
// are omitted. The discriminator key is attached to nested maps under the
// same polymorphism rules as ToNode.
func (e *Entity) ToMap(reg *Registry) (map[string]any, error) {
	m := make(map[string]any)
	for _, d := range e.descriptors {
		v, ok := e.values[d.WireName]
		if !ok {
			continue
		}

		if _, isScalar := d.Kind.IsScalar(); isScalar {
			m[d.WireName] = mapScalar(v)
			continue
		}

		if ref, isNested := d.Kind.IsNested(); isNested {
			sub, err := nestedToMap(reg, ref, v.(*Entity))
			if err != nil {
				return nil, err
			}
			m[d.WireName] = sub
			continue
		}

		elem, _ := d.Kind.IsList()
		items := v.([]any)
		if len(items) == 0 {
			continue
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			if _, isScalar := elem.IsScalar(); isScalar {
				out = append(out, mapScalar(item))
			} else {
				ref, _ := elem.IsNested()
				sub, err := nestedToMap(reg, ref, item.(*Entity))
				if err != nil {
					return nil, err
				}
				out = append(out, sub)
			}
		}
		m[d.WireName] = out
	}
	return m, nil
}

// mapScalar converts a canonical runtime scalar to its map representation.
// Decimals are carried as strings so the exact text survives JSON and YAML.
func mapScalar(v any) any {
	if d, ok := v.(Decimal); ok {
		return string(d)
	}
	return v
}

func nestedToMap(reg *Registry, declaredRef string, sub *Entity) (map[string]any, error) {
	m, err := sub.ToMap(reg)
	if err != nil {
		return nil, err
	}
	if reg.IsAbstract(declaredRef) || sub.TypeName() != StripPrefix(declaredRef) {
		m[DiscriminatorKey] = sub.TypeName()
	}
	return m, nil
}

// FromMap populates the entity from a nested mapping, the exact inverse of
// ToMap. Keys that match no descriptor (including the discriminator key)
// are ignored. Like FromNode, the walk stages all values and commits only
// on success.
func (e *Entity) FromMap(reg *Registry, m map[string]any) error {
	const op = "Entity.FromMap"

	values := make(map[string]any, len(e.descriptors))
	for _, d := range e.descriptors {
		raw, present := m[d.WireName]
		if !present || raw == nil {
			if d.Required {
				return obsgraph.NewMissingFieldError(op, d.WireName, 0)
			}
			if _, isList := d.Kind.IsList(); isList {
				values[d.WireName] = []any{}
			}
			continue
		}

		if sk, isScalar := d.Kind.IsScalar(); isScalar {
			v, err := coerceScalar(sk, raw)
			if err != nil {
				return obsgraph.NewMalformedValueError(op, d.WireName, fmt.Sprintf("%v", raw), 0, err)
			}
			values[d.WireName] = v
			continue
		}

		if ref, isNested := d.Kind.IsNested(); isNested {
			subMap, ok := raw.(map[string]any)
			if !ok {
				return obsgraph.NewMalformedValueError(op, d.WireName, fmt.Sprintf("%v", raw),
					0, fmt.Errorf("%w: expected mapping, got %T", obsgraph.ErrMalformedValue, raw))
			}
			sub, err := nestedFromMap(reg, ref, d.WireName, subMap)
			if err != nil {
				return err
			}
			values[d.WireName] = sub
			continue
		}

		elem, _ := d.Kind.IsList()
		rawItems, ok := raw.([]any)
		if !ok {
			return obsgraph.NewMalformedValueError(op, d.WireName, fmt.Sprintf("%v", raw),
				0, fmt.Errorf("%w: expected list, got %T", obsgraph.ErrMalformedValue, raw))
		}
		items := make([]any, 0, len(rawItems))
		for _, item := range rawItems {
			if sk, isScalar := elem.IsScalar(); isScalar {
				v, err := coerceScalar(sk, item)
				if err != nil {
					return obsgraph.NewMalformedValueError(op, d.WireName, fmt.Sprintf("%v", item), 0, err)
				}
				items = append(items, v)
			} else {
				ref, _ := elem.IsNested()
				subMap, ok := item.(map[string]any)
				if !ok {
					return obsgraph.NewMalformedValueError(op, d.WireName, fmt.Sprintf("%v", item),
						0, fmt.Errorf("%w: expected mapping, got %T", obsgraph.ErrMalformedValue, item))
				}
				sub, err := nestedFromMap(reg, ref, d.WireName, subMap)
				if err != nil {
					return err
				}
				items = append(items, sub)
			}
		}
		if d.Required && len(items) == 0 {
			return obsgraph.NewMissingFieldError(op, d.WireName, 0)
		}
		values[d.WireName] = items
	}

	e.values = values
	return nil
}

// FromMap constructs an entity of the type the mapping's discriminator
// resolves to in reg, then populates it. It is the map-side entry point
// for parsing polymorphic payloads whose concrete type is unknown to the
// caller.
func FromMap(reg *Registry, m map[string]any) (*Entity, error) {
	const op = "entity.FromMap"

	disc, _ := m[DiscriminatorKey].(string)
	if disc == "" {
		return nil, obsgraph.NewMissingDiscriminatorError(op, DiscriminatorKey, 0)
	}
	ctor, err := reg.Resolve(disc)
	if err != nil {
		return nil, err
	}
	e := ctor()
	if err := e.FromMap(reg, m); err != nil {
		return nil, err
	}
	return e, nil
}

func nestedFromMap(reg *Registry, declaredRef, field string, m map[string]any) (*Entity, error) {
	const op = "Entity.FromMap"

	var ctor Constructor
	var err error
	if disc, _ := m[DiscriminatorKey].(string); disc != "" {
		ctor, err = reg.Resolve(disc)
	} else {
		if reg.IsAbstract(declaredRef) {
			return nil, obsgraph.NewMissingDiscriminatorError(op, field, 0)
		}
		ctor, err = reg.Resolve(declaredRef)
		if err != nil {
			err = fmt.Errorf("declared type of field %q is not registered: %w", field, err)
		}
	}
	if err != nil {
		return nil, err
	}

	sub := ctor()
	if err := sub.FromMap(reg, m); err != nil {
		return nil, err
	}
	return sub, nil
}
