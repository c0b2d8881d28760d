package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/xmltree"
)

// EncodeXML writes the document as indented XML.
func (d *Document) EncodeXML(reg *entity.Registry, w io.Writer) error {
	root, err := d.ToNode(reg)
	if err != nil {
		return err
	}
	return xmltree.EncodeIndent(w, root, "  ")
}

// DecodeXML parses an XML document, registering declared ids into the
// store (when one is given).
func DecodeXML(ctx context.Context, reg *entity.Registry, store ident.Store, r io.Reader) (*Document, error) {
	root, err := xmltree.Decode(r)
	if err != nil {
		return nil, err
	}
	if root.Tag != observablesTag {
		return nil, fmt.Errorf("document: unexpected root element %q, want %s", root.Tag, observablesTag)
	}
	return FromNode(ctx, reg, store, root)
}

// EncodeJSON writes the document as indented JSON.
func (d *Document) EncodeJSON(reg *entity.Registry, w io.Writer) error {
	m, err := d.ToMap(reg)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// DecodeJSON parses a JSON document.
func DecodeJSON(ctx context.Context, reg *entity.Registry, store ident.Store, r io.Reader) (*Document, error) {
	var m map[string]any
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("document: decode JSON: %w", err)
	}
	return FromMap(ctx, reg, store, m)
}

// EncodeYAML writes the document as YAML.
func (d *Document) EncodeYAML(reg *entity.Registry, w io.Writer) error {
	m, err := d.ToMap(reg)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(m)
}

// DecodeYAML parses a YAML document.
func DecodeYAML(ctx context.Context, reg *entity.Registry, store ident.Store, r io.Reader) (*Document, error) {
	var m map[string]any
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("document: decode YAML: %w", err)
	}
	return FromMap(ctx, reg, store, m)
}
