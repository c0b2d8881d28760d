// Package document provides the observable document root: a collection
// of graph objects that round-trips as XML, JSON, or YAML.
//
// Parsing a document registers every object that declares an id into
// the supplied identifier store, so references between objects of the
// same document resolve after the parse. References to ids the
// document never defines are legal on the wire; DanglingRefs lists
// them for callers that want to know.
package document

import (
	"context"
	"sort"

	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/graph"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/xmltree"
)

// Wire names of the document envelope.
const (
	observablesTag = "Observables"
	observablesKey = "observables"
)

// Document is an ordered collection of observable objects.
type Document struct {
	Objects []*graph.Object
}

// New creates a document holding the given objects.
func New(objects ...*graph.Object) *Document {
	return &Document{Objects: objects}
}

// Append adds objects to the document.
func (d *Document) Append(objects ...*graph.Object) {
	d.Objects = append(d.Objects, objects...)
}

// ToNode serializes the document as an element tree rooted at
// Observables.
func (d *Document) ToNode(reg *entity.Registry) (*xmltree.Node, error) {
	root := xmltree.New(observablesTag)
	for _, o := range d.Objects {
		node, err := o.ToNode(reg, graph.ObjectTag)
		if err != nil {
			return nil, err
		}
		root.AppendChild(node)
	}
	return root, nil
}

// FromNode parses a document from an element tree, registering declared
// ids into the store (when one is given).
func FromNode(ctx context.Context, reg *entity.Registry, store ident.Store, root *xmltree.Node) (*Document, error) {
	d := &Document{}
	for _, node := range root.ChildrenByTag(graph.ObjectTag) {
		o, err := graph.FromNode(ctx, reg, store, node)
		if err != nil {
			return nil, err
		}
		d.Objects = append(d.Objects, o)
	}
	return d, nil
}

// ToMap serializes the document as a nested mapping.
func (d *Document) ToMap(reg *entity.Registry) (map[string]any, error) {
	objects := make([]any, 0, len(d.Objects))
	for _, o := range d.Objects {
		m, err := o.ToMap(reg)
		if err != nil {
			return nil, err
		}
		objects = append(objects, m)
	}
	return map[string]any{observablesKey: objects}, nil
}

// FromMap parses a document from its map form, registering declared ids
// into the store (when one is given).
func FromMap(ctx context.Context, reg *entity.Registry, store ident.Store, m map[string]any) (*Document, error) {
	d := &Document{}
	raw, _ := m[observablesKey].([]any)
	for _, item := range raw {
		om, ok := item.(map[string]any)
		if !ok {
			continue
		}
		o, err := graph.FromMap(ctx, reg, store, om)
		if err != nil {
			return nil, err
		}
		d.Objects = append(d.Objects, o)
	}
	return d, nil
}

// DanglingRefs returns the identifiers the document references but
// never defines, sorted and deduplicated. A dangling reference is
// advisory, not an error: the definition may live in another document.
func (d *Document) DanglingRefs() []string {
	defined := map[string]bool{}
	referenced := map[string]bool{}

	var walk func(o *graph.Object)
	walk = func(o *graph.Object) {
		if o.ID != "" {
			defined[o.ID] = true
		}
		if o.IDRef != "" {
			referenced[o.IDRef] = true
		}
		for _, r := range o.Related {
			walk(&r.Object)
		}
	}
	for _, o := range d.Objects {
		walk(o)
	}

	var out []string
	for id := range referenced {
		if !defined[id] {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Equal reports deep equality of the documents' objects, in order.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.Objects) != len(other.Objects) {
		return false
	}
	for i := range d.Objects {
		if !d.Objects[i].Equal(other.Objects[i]) {
			return false
		}
	}
	return true
}
