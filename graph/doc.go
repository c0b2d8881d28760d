// Package graph models observable objects and the references between
// them.
//
// An Object owns an entity payload and a stable identifier, or instead
// names another object by idref. Related objects hang off their parent
// with a relationship label and come in the same two states: inline
// (payload embedded where it appears) or reference (only the idref and
// the relationship travel on the wire). The state is fixed when the
// node is constructed.
//
// Identifiers are resolved against an ident.Store. Constructing an
// object registers it under its fresh identifier; parsing a document
// registers every object that declares an id, so idrefs made elsewhere
// in the document resolve afterwards. An idref that was never defined
// stays unresolved and surfaces as obsgraph.ErrCacheMiss from
// GetProperties.
package graph
