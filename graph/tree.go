package graph

import (
	"context"

	"github.com/zero-day-ai/obsgraph"
	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/vocab"
	"github.com/zero-day-ai/obsgraph/xmltree"
)

// Wire names of the object envelope.
const (
	ObjectTag         = "Object"
	propertiesTag     = "Properties"
	relatedObjectsTag = "Related_Objects"
	relatedObjectTag  = "Related_Object"
	relationshipTag   = "Relationship"

	idAttr    = "id"
	idrefAttr = "idref"
)

// ToNode serializes the object envelope. References emit only their
// idref; defined objects emit their id, the payload under Properties
// (with its discriminator, since the payload position is polymorphic),
// and any related objects.
func (o *Object) ToNode(reg *entity.Registry, tag string) (*xmltree.Node, error) {
	if tag == "" {
		tag = ObjectTag
	}
	node := xmltree.New(tag)

	if o.IDRef != "" {
		node.SetAttr(idrefAttr, o.IDRef)
	} else if o.ID != "" {
		node.SetAttr(idAttr, o.ID)
	}

	if o.IDRef == "" && o.Properties != nil {
		props, err := o.Properties.ToNode(reg, propertiesTag)
		if err != nil {
			return nil, err
		}
		props.SetDiscriminator(o.Properties.TypeName())
		node.AppendChild(props)
	}

	if len(o.Related) > 0 {
		rels := xmltree.New(relatedObjectsTag)
		for _, r := range o.Related {
			child, err := r.toNode(reg)
			if err != nil {
				return nil, err
			}
			rels.AppendChild(child)
		}
		node.AppendChild(rels)
	}
	return node, nil
}

func (r *RelatedObject) toNode(reg *entity.Registry) (*xmltree.Node, error) {
	node, err := r.Object.ToNode(reg, relatedObjectTag)
	if err != nil {
		return nil, err
	}
	if !r.Relationship.IsZero() {
		rel := xmltree.New(relationshipTag)
		rel.Text = r.Relationship.Value
		node.AppendChild(rel)
	}
	return node, nil
}

// FromNode parses an object envelope. Every object that declares an id
// is registered in the store (when one is given) so idrefs elsewhere in
// the document resolve afterwards.
func FromNode(ctx context.Context, reg *entity.Registry, store ident.Store, node *xmltree.Node) (*Object, error) {
	o := &Object{}
	if err := o.fromNode(ctx, reg, store, node); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Object) fromNode(ctx context.Context, reg *entity.Registry, store ident.Store, node *xmltree.Node) error {
	if idref := node.Attr(idrefAttr); idref != "" {
		o.IDRef = idref
	} else {
		o.ID = node.Attr(idAttr)
		if props := node.Child(propertiesTag); props != nil {
			e, err := parseProperties(reg, props)
			if err != nil {
				return err
			}
			o.Properties = e
		}
	}

	if rels := node.Child(relatedObjectsTag); rels != nil {
		for _, child := range rels.ChildrenByTag(relatedObjectTag) {
			r, err := relatedFromNode(ctx, reg, store, child)
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

// parseProperties resolves and parses the polymorphic payload position.
// The root fallback applies here: a discriminator the registry does not
// know resolves to the designated default type when one is configured.
func parseProperties(reg *entity.Registry, node *xmltree.Node) (*entity.Entity, error) {
	const op = "Object.FromNode"

	ctor, err := reg.ResolveRoot(node.Discriminator())
	if err != nil {
		if node.Discriminator() == "" {
			return nil, obsgraph.NewMissingDiscriminatorError(op, node.Tag, node.Line)
		}
		return nil, err
	}

	e := ctor()
	if err := e.FromNode(reg, node); err != nil {
		return nil, err
	}
	return e, nil
}

func relatedFromNode(ctx context.Context, reg *entity.Registry, store ident.Store, node *xmltree.Node) (*RelatedObject, error) {
	r := &RelatedObject{}
	if err := r.Object.fromNode(ctx, reg, store, node); err != nil {
		return nil, err
	}
	r.inline = r.IDRef == ""

	if rel := node.Child(relationshipTag); rel != nil && rel.Text != "" {
		r.Relationship = vocab.Relationship(rel.Text)
	}
	return r, nil
}
