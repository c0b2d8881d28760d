package xmltree

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Decode reads an XML document from r and returns its element tree.
// Each element records the source line it started on, which the entity
// layer threads into parse errors. Namespace handling is limited to prefix
// bookkeeping: xsi-namespaced attributes keep their xsi: prefix, xmlns
// declarations are dropped, and other namespaces are reduced to local
// names.
func Decode(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	lines := newlineOffsets(data)
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := New(t.Name.Local)
			n.Line = lineAt(lines, dec.InputOffset())
			for _, a := range t.Attr {
				name, ok := attrName(a.Name)
				if !ok {
					continue
				}
				n.SetAttr(name, a.Value)
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse XML: multiple root elements")
				}
				root = n
			} else {
				stack[len(stack)-1].AppendChild(n)
			}
			stack = append(stack, n)
			text.Reset()

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse XML: unbalanced end element %q", t.Name.Local)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(top.Children()) == 0 {
				top.Text = strings.TrimSpace(text.String())
			}
			text.Reset()

		case xml.CharData:
			text.Write(t)
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse XML: empty document")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("parse XML: unclosed element %q", stack[len(stack)-1].Tag)
	}
	return root, nil
}

// Encode writes the element tree rooted at n to w as XML. When any element
// in the tree carries an xsi: attribute, the xsi namespace declaration is
// emitted on the root element.
func Encode(w io.Writer, n *Node) error {
	enc := xml.NewEncoder(w)
	if err := encodeNode(enc, n, usesXSI(n)); err != nil {
		return err
	}
	return enc.Flush()
}

// EncodeIndent is Encode with the given indentation applied.
func EncodeIndent(w io.Writer, n *Node, indent string) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", indent)
	if err := encodeNode(enc, n, usesXSI(n)); err != nil {
		return err
	}
	return enc.Flush()
}

func encodeNode(enc *xml.Encoder, n *Node, declareXSI bool) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Tag}}
	if declareXSI {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: "xmlns:xsi"},
			Value: xsiNamespace,
		})
	}
	for _, a := range n.Attrs() {
		start.Attr = append(start.Attr, xml.Attr{
			Name:  xml.Name{Local: a.Name},
			Value: a.Value,
		})
	}

	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encode element %q: %w", n.Tag, err)
	}
	if len(n.Children()) > 0 {
		for _, c := range n.Children() {
			if err := encodeNode(enc, c, false); err != nil {
				return err
			}
		}
	} else if n.Text != "" {
		if err := enc.EncodeToken(xml.CharData(n.Text)); err != nil {
			return fmt.Errorf("encode text of %q: %w", n.Tag, err)
		}
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return fmt.Errorf("encode element %q: %w", n.Tag, err)
	}
	return nil
}

// attrName maps a decoded attribute name to the adapter's flat naming.
// xsi-namespaced attributes keep the conventional prefix, xmlns
// declarations are dropped, and everything else is reduced to its local
// name.
func attrName(name xml.Name) (string, bool) {
	switch name.Space {
	case "":
		if name.Local == "xmlns" {
			return "", false
		}
		return name.Local, true
	case "xmlns":
		return "", false
	case xsiNamespace:
		return "xsi:" + name.Local, true
	default:
		return name.Local, true
	}
}

func usesXSI(n *Node) bool {
	for _, a := range n.Attrs() {
		if strings.HasPrefix(a.Name, "xsi:") {
			return true
		}
	}
	for _, c := range n.Children() {
		if usesXSI(c) {
			return true
		}
	}
	return false
}

// newlineOffsets returns the byte offsets of every newline in data.
func newlineOffsets(data []byte) []int64 {
	var offs []int64
	for i, b := range data {
		if b == '\n' {
			offs = append(offs, int64(i))
		}
	}
	return offs
}

// lineAt converts a byte offset into a 1-based line number.
func lineAt(newlines []int64, offset int64) int {
	return sort.Search(len(newlines), func(i int) bool {
		return newlines[i] >= offset
	}) + 1
}
