package entity

import (
	"fmt"

	"github.com/zero-day-ai/obsgraph"
	"github.com/zero-day-ai/obsgraph/xmltree"
)

// ToNode serializes the entity as an element tree rooted at tag. Fields
// are written in declaration order; absent optional values and empty lists
// are omitted entirely, never emitted as empty placeholders. Nested values
// carry their discriminator whenever the declared field type is abstract in
// reg, or when the value's concrete type differs from the declared one.
func (e *Entity) ToNode(reg *Registry, tag string) (*xmltree.Node, error) {
	const op = "Entity.ToNode"

	node := xmltree.New(tag)
	for _, d := range e.descriptors {
		v, ok := e.values[d.WireName]
		if !ok {
			continue
		}

		if sk, isScalar := d.Kind.IsScalar(); isScalar {
			text, err := FormatScalar(sk, v)
			if err != nil {
				return nil, obsgraph.NewMalformedValueError(op, d.WireName, "", 0, err)
			}
			if d.Attr {
				node.SetAttr(d.WireName, text)
			} else {
				child := xmltree.New(d.WireName)
				child.Text = text
				node.AppendChild(child)
			}
			continue
		}

		if ref, isNested := d.Kind.IsNested(); isNested {
			child, err := nestedToNode(reg, ref, v.(*Entity), d.WireName)
			if err != nil {
				return nil, err
			}
			node.AppendChild(child)
			continue
		}

		elem, _ := d.Kind.IsList()
		for _, item := range v.([]any) {
			if sk, isScalar := elem.IsScalar(); isScalar {
				text, err := FormatScalar(sk, item)
				if err != nil {
					return nil, obsgraph.NewMalformedValueError(op, d.WireName, "", 0, err)
				}
				child := xmltree.New(d.WireName)
				child.Text = text
				node.AppendChild(child)
			} else {
				ref, _ := elem.IsNested()
				child, err := nestedToNode(reg, ref, item.(*Entity), d.WireName)
				if err != nil {
					return nil, err
				}
				node.AppendChild(child)
			}
		}
	}
	return node, nil
}

// nestedToNode writes a nested entity, attaching the discriminator when the
// declared reference is polymorphic or the concrete type deviates from it.
func nestedToNode(reg *Registry, declaredRef string, sub *Entity, tag string) (*xmltree.Node, error) {
	child, err := sub.ToNode(reg, tag)
	if err != nil {
		return nil, err
	}
	if reg.IsAbstract(declaredRef) || sub.TypeName() != StripPrefix(declaredRef) {
		child.SetDiscriminator(sub.TypeName())
	}
	return child, nil
}

// FromNode populates the entity from an element tree. The walk is the
// exact inverse of ToNode: attributes and children are located by wire
// name, scalars parsed with kind-specific validation, and nested fields
// resolved through reg when the node carries a discriminator. All fields
// are parsed into a staging set first; the entity is only modified when the
// whole walk succeeds, so a failed parse never leaves a half-populated
// entity.
func (e *Entity) FromNode(reg *Registry, node *xmltree.Node) error {
	const op = "Entity.FromNode"

	values := make(map[string]any, len(e.descriptors))
	for _, d := range e.descriptors {
		if sk, isScalar := d.Kind.IsScalar(); isScalar {
			raw, present, line := scalarSource(node, d)
			if !present {
				if d.Required {
					return obsgraph.NewMissingFieldError(op, d.WireName, node.Line)
				}
				continue
			}
			v, err := ParseScalar(sk, raw)
			if err != nil {
				return obsgraph.NewMalformedValueError(op, d.WireName, raw, line, err)
			}
			values[d.WireName] = v
			continue
		}

		if ref, isNested := d.Kind.IsNested(); isNested {
			child := node.Child(d.WireName)
			if child == nil {
				if d.Required {
					return obsgraph.NewMissingFieldError(op, d.WireName, node.Line)
				}
				continue
			}
			sub, err := nestedFromNode(reg, ref, child)
			if err != nil {
				return err
			}
			values[d.WireName] = sub
			continue
		}

		elem, _ := d.Kind.IsList()
		children := node.ChildrenByTag(d.WireName)
		items := make([]any, 0, len(children))
		for _, child := range children {
			if sk, isScalar := elem.IsScalar(); isScalar {
				v, err := ParseScalar(sk, child.Text)
				if err != nil {
					return obsgraph.NewMalformedValueError(op, d.WireName, child.Text, child.Line, err)
				}
				items = append(items, v)
			} else {
				ref, _ := elem.IsNested()
				sub, err := nestedFromNode(reg, ref, child)
				if err != nil {
					return err
				}
				items = append(items, sub)
			}
		}
		if d.Required && len(items) == 0 {
			return obsgraph.NewMissingFieldError(op, d.WireName, node.Line)
		}
		values[d.WireName] = items
	}

	e.values = values
	return nil
}

// FromNode constructs an entity of the type the node's discriminator
// resolves to in reg, then populates it. It is the tree-side entry point
// for parsing polymorphic payloads whose concrete type is unknown to the
// caller.
func FromNode(reg *Registry, node *xmltree.Node) (*Entity, error) {
	const op = "entity.FromNode"

	disc := node.Discriminator()
	if disc == "" {
		return nil, obsgraph.NewMissingDiscriminatorError(op, node.Tag, node.Line)
	}
	ctor, err := reg.Resolve(disc)
	if err != nil {
		return nil, err
	}
	e := ctor()
	if err := e.FromNode(reg, node); err != nil {
		return nil, err
	}
	return e, nil
}

// scalarSource locates a scalar field's raw text on the node, honoring the
// descriptor's attribute-vs-child placement.
func scalarSource(node *xmltree.Node, d Descriptor) (raw string, present bool, line int) {
	if d.Attr {
		if !node.HasAttr(d.WireName) {
			return "", false, 0
		}
		return node.Attr(d.WireName), true, node.Line
	}
	child := node.Child(d.WireName)
	if child == nil {
		return "", false, 0
	}
	return child.Text, true, child.Line
}

// nestedFromNode resolves and parses one nested element. A discriminator
// on the element always wins; without one, the declared reference is used,
// which is only legal when that reference is monomorphic.
func nestedFromNode(reg *Registry, declaredRef string, node *xmltree.Node) (*Entity, error) {
	const op = "Entity.FromNode"

	var ctor Constructor
	var err error
	if disc := node.Discriminator(); disc != "" {
		ctor, err = reg.Resolve(disc)
	} else {
		if reg.IsAbstract(declaredRef) {
			return nil, obsgraph.NewMissingDiscriminatorError(op, node.Tag, node.Line)
		}
		ctor, err = reg.Resolve(declaredRef)
		if err != nil {
			err = fmt.Errorf("declared type of field %q is not registered: %w", node.Tag, err)
		}
	}
	if err != nil {
		return nil, err
	}

	sub := ctor()
	if err := sub.FromNode(reg, node); err != nil {
		return nil, err
	}
	return sub, nil
}
