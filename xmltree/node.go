package xmltree

// DiscriminatorAttr is the attribute carrying the polymorphic type
// discriminator on an element.
const DiscriminatorAttr = "xsi:type"

// xsiNamespace is the XML Schema instance namespace backing the xsi prefix.
const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// Attr is a single named attribute on a Node.
type Attr struct {
	Name  string
	Value string
}

// Node is one element in the tree representation consumed and produced by
// the marshaling core. Attribute and child order is preserved so that
// serialization is deterministic.
type Node struct {
	// Tag is the element name.
	Tag string

	// Text is the character content of a leaf element. Elements with
	// children carry no text (mixed content is not supported).
	Text string

	// Line is the 1-based source line this element started on, or 0 for
	// nodes built in memory.
	Line int

	attrs    []Attr
	children []*Node
}

// New creates an empty element with the given tag.
func New(tag string) *Node {
	return &Node{Tag: tag}
}

// HasAttr reports whether the named attribute is present.
func (n *Node) HasAttr(name string) bool {
	for _, a := range n.attrs {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets the named attribute, overwriting in place so attribute order
// stays stable across updates.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
}

// Attrs returns the attributes in declaration order.
func (n *Node) Attrs() []Attr {
	return n.attrs
}

// Children returns the child elements in input order.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the first child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildrenByTag returns all children with the given tag, in input order.
func (n *Node) ChildrenByTag(tag string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild adds a child element.
func (n *Node) AppendChild(c *Node) {
	n.children = append(n.children, c)
}

// Discriminator returns the element's type discriminator (the xsi:type
// attribute), or "" when none is present. Namespace prefixes are left on
// the value; the type registry strips them on resolution.
func (n *Node) Discriminator() string {
	return n.Attr(DiscriminatorAttr)
}

// SetDiscriminator sets the element's type discriminator.
func (n *Node) SetDiscriminator(discriminator string) {
	n.SetAttr(DiscriminatorAttr, discriminator)
}
