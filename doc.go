// Package obsgraph provides a marshaling layer for cyber observable object
// graphs. In-memory entities round-trip losslessly between two external tree
// representations, an XML-shaped element tree and a nested map, with
// polymorphic subtypes selected by an xsi:type discriminator and object
// graphs whose nodes may be embedded inline or referenced by identifier and
// resolved later against a shared store.
//
// # Core Concepts
//
// The SDK is organized around several key concepts:
//
//   - Descriptors: declarative field metadata that drives the generic
//     tree walk, so entity types need no per-field marshaling code
//   - Entities: ordered (descriptor, value) records with symmetric
//     ToNode/FromNode and ToMap/FromMap operations
//   - Type Registry: maps discriminator strings to entity constructors in
//     both read and write directions
//   - Identifier Store: generates process-unique identifiers and resolves
//     them back to live objects for reference-style graph nodes
//   - Objects: graph nodes carrying an identifier, an inline payload or a
//     bare reference, and an optional relationship label
//
// # Package Layout
//
//   - entity: descriptors, the generic entity base, scalar formatting, and
//     the polymorphic type registry
//   - xmltree: the element-tree representation and its XML codec
//   - ident: identifier generation and the pluggable identifier store
//     (in-memory, Redis, etcd)
//   - vocab: controlled-vocabulary string values such as object
//     relationships
//   - graph: the Object and RelatedObject reference-graph model
//   - objects: concrete observable types (Address, File, ...) built on
//     descriptors
//   - document: whole-document encode/decode across XML, JSON, and YAML
//
// # Error Handling
//
// This package defines the error taxonomy shared by all subpackages.
// Recoverable conditions (ErrCacheMiss) and fatal structural failures
// (ErrMissingRequiredField, ErrUnknownDiscriminator) are distinct sentinels
// matchable with errors.Is, and the structured Error type carries the
// offending field name and source line where available.
package obsgraph
