package entity

import (
	"fmt"

	"github.com/zero-day-ai/obsgraph"
)

// Entity is the generic base for every schema-described type: an ordered
// set of (descriptor, value) pairs. The descriptor set is fixed when the
// entity is constructed and drives the whole tree and map walk; entity
// types never write per-field marshaling code.
//
// Canonical runtime shapes per descriptor kind:
//
//   - string scalars: string
//   - integer scalars: int64
//   - float and double scalars: float64
//   - decimal scalars: Decimal
//   - boolean scalars: bool
//   - nested fields: *Entity
//   - list fields: []any of the element shape
//
// List fields are always present: an unset list reads as empty rather than
// absent, and empty lists are omitted from serialized output.
type Entity struct {
	typeName    string
	descriptors []Descriptor
	index       map[string]int
	values      map[string]any
}

// Constructor builds a fresh, empty instance of a concrete entity type.
// Constructors are what the type registry maps discriminators to.
type Constructor func() *Entity

// New defines an entity instance from its type name (which doubles as its
// discriminator) and descriptor set. It fails if the descriptor set is
// inconsistent, e.g. duplicate wire names or non-scalar attributes.
func New(typeName string, descriptors []Descriptor) (*Entity, error) {
	const op = "entity.New"

	if typeName == "" {
		return nil, obsgraph.NewDefinitionError(op, "", fmt.Errorf("empty type name"))
	}

	e := &Entity{
		typeName:    typeName,
		descriptors: descriptors,
		index:       make(map[string]int, len(descriptors)),
		values:      make(map[string]any, len(descriptors)),
	}
	for i, d := range descriptors {
		if err := d.validate(); err != nil {
			return nil, obsgraph.NewDefinitionError(op, d.WireName, err)
		}
		if _, dup := e.index[d.WireName]; dup {
			return nil, obsgraph.NewDefinitionError(op, d.WireName, fmt.Errorf("duplicate wire name %q", d.WireName))
		}
		e.index[d.WireName] = i
		if _, isList := d.Kind.IsList(); isList {
			e.values[d.WireName] = []any{}
		}
	}
	return e, nil
}

// MustNew is New but panics on definition errors. Use it for statically
// known descriptor sets, typically inside type constructors.
func MustNew(typeName string, descriptors []Descriptor) *Entity {
	e, err := New(typeName, descriptors)
	if err != nil {
		panic(err)
	}
	return e
}

// TypeName returns the entity's own discriminator string.
func (e *Entity) TypeName() string {
	return e.typeName
}

// Descriptors returns the entity type's descriptor set in declaration
// order. The returned slice is shared metadata; callers must not mutate it.
func (e *Entity) Descriptors() []Descriptor {
	return e.descriptors
}

// Descriptor returns the descriptor for the given wire name.
func (e *Entity) Descriptor(wireName string) (Descriptor, bool) {
	i, ok := e.index[wireName]
	if !ok {
		return Descriptor{}, false
	}
	return e.descriptors[i], true
}

// Get returns the value of the named field and whether it is present.
// List fields are always present, possibly empty.
func (e *Entity) Get(wireName string) (any, bool) {
	v, ok := e.values[wireName]
	return v, ok
}

// Set assigns the named field, checking the value against the descriptor's
// declared shape. Scalars accept the native Go equivalents and are
// normalized to the canonical shape (e.g. int becomes int64).
func (e *Entity) Set(wireName string, v any) error {
	const op = "Entity.Set"

	i, ok := e.index[wireName]
	if !ok {
		return obsgraph.NewDefinitionError(op, wireName, fmt.Errorf("no such field on %s", e.typeName))
	}

	val, err := checkValue(e.descriptors[i].Kind, v)
	if err != nil {
		return obsgraph.NewMalformedValueError(op, wireName, fmt.Sprintf("%v", v), 0, err)
	}
	e.values[wireName] = val
	return nil
}

// With is Set for builder-style chaining over statically known fields.
// It panics on error, so use it only where the field and value shape are
// fixed at compile time.
func (e *Entity) With(wireName string, v any) *Entity {
	if err := e.Set(wireName, v); err != nil {
		panic(err)
	}
	return e
}

// Unset removes the named field's value. List fields revert to empty.
func (e *Entity) Unset(wireName string) {
	i, ok := e.index[wireName]
	if !ok {
		return
	}
	if _, isList := e.descriptors[i].Kind.IsList(); isList {
		e.values[wireName] = []any{}
		return
	}
	delete(e.values, wireName)
}

// checkValue normalizes v against the declared shape, recursing into lists.
func checkValue(kind ValueKind, v any) (any, error) {
	if sk, ok := kind.IsScalar(); ok {
		return coerceScalar(sk, v)
	}

	if _, ok := kind.IsNested(); ok {
		if sub, ok := v.(*Entity); ok && sub != nil {
			return sub, nil
		}
		return nil, fmt.Errorf("expected nested entity, got %T", v)
	}

	elem, _ := kind.IsList()
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected list, got %T", v)
	}
	out := make([]any, len(items))
	for i, item := range items {
		val, err := checkValue(elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// Clone returns a deep copy of the entity. Descriptor metadata is shared;
// values, nested entities, and lists are copied.
func (e *Entity) Clone() *Entity {
	c := &Entity{
		typeName:    e.typeName,
		descriptors: e.descriptors,
		index:       e.index,
		values:      make(map[string]any, len(e.values)),
	}
	for k, v := range e.values {
		c.values[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case *Entity:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Equal reports field-by-field equality of two entities: same type name,
// and every descriptor's value present-and-equal on both sides. Empty
// lists compare equal to empty lists regardless of how they were produced.
func (e *Entity) Equal(o *Entity) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.typeName != o.typeName || len(e.descriptors) != len(o.descriptors) {
		return false
	}
	for _, d := range e.descriptors {
		av, aok := e.values[d.WireName]
		bv, bok := o.values[d.WireName]
		if aok != bok {
			return false
		}
		if !aok {
			continue
		}
		if !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch at := a.(type) {
	case *Entity:
		bt, ok := b.(*Entity)
		return ok && at.Equal(bt)
	case []any:
		bt, ok := b.([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !valueEqual(at[i], bt[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
