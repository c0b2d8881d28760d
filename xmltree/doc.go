// Package xmltree provides the element-tree representation consumed by the
// marshaling core, together with its XML codec.
//
// The tree is deliberately small: elements carry a tag, ordered attributes,
// ordered children, leaf text, and the source line they were decoded from.
// The entity layer walks trees exclusively through this surface, so the
// core never touches encoding/xml directly.
//
// Namespace handling is limited to prefix bookkeeping. The xsi:type
// discriminator attribute is preserved under its conventional prefix and
// exposed via Node.Discriminator; other namespaces are flattened to local
// names on decode.
package xmltree
