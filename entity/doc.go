// Package entity implements the declarative field-description mechanism at
// the heart of the marshaling layer.
//
// An entity type is defined once by its descriptor set; the generic walk
// (ToNode/FromNode over element trees, ToMap/FromMap over nested maps) is
// implemented purely in terms of those descriptors, so concrete types carry
// no per-field marshaling code. The two directions are inverse: for any
// validly constructed entity e, FromNode(ToNode(e)) and FromMap(ToMap(e))
// reproduce e field by field.
//
// Polymorphism is handled by the Registry, which maps discriminator
// strings (xsi:type values, namespace prefix stripped) to concrete
// constructors. Nested fields whose declared type is abstract carry the
// discriminator on the wire and are resolved through the registry on read.
package entity
