package entity

import "fmt"

// ScalarKind identifies the primitive kind of a scalar field.
type ScalarKind int

// Scalar kinds with their own text format and parse rules.
const (
	String ScalarKind = iota
	Integer
	Float
	Double
	DecimalKind
	Boolean
)

// String returns the wire-facing name of the scalar kind.
func (k ScalarKind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Double:
		return "double"
	case DecimalKind:
		return "decimal"
	case Boolean:
		return "boolean"
	default:
		return fmt.Sprintf("ScalarKind(%d)", int(k))
	}
}

type valueClass int

const (
	scalarClass valueClass = iota
	nestedClass
	listClass
)

// ValueKind declares the shape of a field's value: a scalar of some kind,
// a nested entity identified by a type reference, or a list of either.
// Construct values with ScalarOf, NestedOf, and ListOf.
type ValueKind struct {
	class   valueClass
	scalar  ScalarKind
	typeRef string
	elem    *ValueKind
}

// ScalarOf declares a scalar value of the given kind.
func ScalarOf(kind ScalarKind) ValueKind {
	return ValueKind{class: scalarClass, scalar: kind}
}

// NestedOf declares a nested entity value. The type reference names the
// declared entity type; when the field is polymorphic, the discriminator on
// the wire overrides it through the registry.
func NestedOf(typeRef string) ValueKind {
	return ValueKind{class: nestedClass, typeRef: typeRef}
}

// ListOf declares a list whose elements have the given shape.
func ListOf(elem ValueKind) ValueKind {
	e := elem
	return ValueKind{class: listClass, elem: &e}
}

// IsScalar reports whether the value is a scalar, and of which kind.
func (v ValueKind) IsScalar() (ScalarKind, bool) {
	return v.scalar, v.class == scalarClass
}

// IsNested reports whether the value is a nested entity, and its declared
// type reference.
func (v ValueKind) IsNested() (string, bool) {
	return v.typeRef, v.class == nestedClass
}

// IsList reports whether the value is a list, and the shape of its
// elements.
func (v ValueKind) IsList() (ValueKind, bool) {
	if v.class != listClass {
		return ValueKind{}, false
	}
	return *v.elem, true
}

// String returns a readable description of the shape, for error messages.
func (v ValueKind) String() string {
	switch v.class {
	case scalarClass:
		return v.scalar.String()
	case nestedClass:
		return "nested " + v.typeRef
	case listClass:
		return "list of " + v.elem.String()
	default:
		return "unknown"
	}
}

// Descriptor declares one named, typed slot on an entity type: its wire
// name, its value shape, whether it is required on read, and whether it is
// carried as an XML attribute rather than a child element. Descriptors are
// type metadata, shared by every instance of the type, and must not be
// mutated after the type is defined.
type Descriptor struct {
	// WireName is the attribute or element name on the wire, and the map
	// key in the map representation. Unique within an entity type.
	WireName string

	// Kind is the declared value shape.
	Kind ValueKind

	// Required marks the field as structural: absence on read is an error,
	// never a defaulted value.
	Required bool

	// Attr serializes the field as an XML attribute instead of a child
	// element. Only scalar fields can be attributes.
	Attr bool
}

// validate checks a single descriptor for internal consistency.
func (d Descriptor) validate() error {
	if d.WireName == "" {
		return fmt.Errorf("empty wire name")
	}
	if d.Attr {
		if _, ok := d.Kind.IsScalar(); !ok {
			return fmt.Errorf("field %q: only scalar fields can be attributes", d.WireName)
		}
	}
	if elem, ok := d.Kind.IsList(); ok {
		if _, nested := elem.IsList(); nested {
			return fmt.Errorf("field %q: lists of lists are not supported", d.WireName)
		}
	}
	return nil
}
