package document

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/zero-day-ai/obsgraph"
	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/graph"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/objects"
	"github.com/zero-day-ai/obsgraph/vocab"
)

func newRegistry() *entity.Registry {
	reg := entity.NewRegistry()
	objects.RegisterDefaults(reg)
	return reg
}

// buildDocument builds a two-object document: a file with an inline and
// a reference related object, plus the standalone reference target.
func buildDocument(t *testing.T) *Document {
	t.Helper()
	ctx := context.Background()
	gen := ident.NewSequentialGenerator()

	file, err := graph.NewObject(ctx, nil, gen, objects.NewFile().
		With("file_name", "boot.ini").
		With("size_in_bytes", int64(211)))
	if err != nil {
		t.Fatal(err)
	}
	_, err = file.AddRelated(ctx, nil, gen,
		objects.NewFile().With("file_name", "ntldr"),
		vocab.Relationship(vocab.RelContains), true)
	if err != nil {
		t.Fatal(err)
	}

	target, err := graph.NewObject(ctx, nil, gen, objects.NewAddress().
		With("category", objects.CategoryIPV4).
		With("address_value", "10.0.0.1"))
	if err != nil {
		t.Fatal(err)
	}
	ref, err := graph.NewReference(target, vocab.Relationship(vocab.RelConnectedTo))
	if err != nil {
		t.Fatal(err)
	}
	file.Related = append(file.Related, ref)

	return New(file, target)
}

func TestXMLRoundTrip(t *testing.T) {
	reg := newRegistry()
	doc := buildDocument(t)

	var buf bytes.Buffer
	if err := doc.EncodeXML(reg, &buf); err != nil {
		t.Fatalf("EncodeXML() error = %v", err)
	}

	back, err := DecodeXML(context.Background(), reg, nil, &buf)
	if err != nil {
		t.Fatalf("DecodeXML() error = %v", err)
	}
	if !doc.Equal(back) {
		t.Error("document did not survive XML round trip")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	reg := newRegistry()
	doc := buildDocument(t)

	var buf bytes.Buffer
	if err := doc.EncodeJSON(reg, &buf); err != nil {
		t.Fatalf("EncodeJSON() error = %v", err)
	}

	back, err := DecodeJSON(context.Background(), reg, nil, &buf)
	if err != nil {
		t.Fatalf("DecodeJSON() error = %v", err)
	}
	if !doc.Equal(back) {
		t.Error("document did not survive JSON round trip")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	reg := newRegistry()
	doc := buildDocument(t)

	var buf bytes.Buffer
	if err := doc.EncodeYAML(reg, &buf); err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}

	back, err := DecodeYAML(context.Background(), reg, nil, &buf)
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if !doc.Equal(back) {
		t.Error("document did not survive YAML round trip")
	}
}

func TestDecodeResolvesCrossObjectReferences(t *testing.T) {
	// The reference in the first object must resolve against the
	// standalone target object defined later in the same document.
	reg := newRegistry()
	ctx := context.Background()
	doc := buildDocument(t)

	var buf bytes.Buffer
	if err := doc.EncodeXML(reg, &buf); err != nil {
		t.Fatal(err)
	}

	store := ident.NewMemStore()
	back, err := DecodeXML(ctx, reg, store, &buf)
	if err != nil {
		t.Fatal(err)
	}

	ref := back.Objects[0].Related[1]
	props, err := ref.GetProperties(ctx, store)
	if err != nil {
		t.Fatalf("GetProperties() error = %v", err)
	}
	if v, _ := props.Get("address_value"); v != "10.0.0.1" {
		t.Errorf("resolved address_value = %v, want 10.0.0.1", v)
	}

	// After a reset the same reference misses.
	if err := store.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := ref.GetProperties(ctx, store); !errors.Is(err, obsgraph.ErrCacheMiss) {
		t.Errorf("GetProperties() after reset error = %v, want ErrCacheMiss", err)
	}
}

func TestDecodeXMLRejectsWrongRoot(t *testing.T) {
	_, err := DecodeXML(context.Background(), newRegistry(), nil,
		strings.NewReader("<NotObservables/>"))
	if err == nil {
		t.Error("DecodeXML() with wrong root error = nil, want error")
	}
}

func TestDecodeXMLMalformedPayload(t *testing.T) {
	const doc = `<Observables>
  <Object id="FileObjectType-1">
    <Properties xsi:type="FileObjectType" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
      <file_name>boot.ini</file_name>
      <size_in_bytes>large</size_in_bytes>
    </Properties>
  </Object>
</Observables>`

	_, err := DecodeXML(context.Background(), newRegistry(), nil, strings.NewReader(doc))
	if !errors.Is(err, obsgraph.ErrMalformedValue) {
		t.Fatalf("DecodeXML() error = %v, want ErrMalformedValue", err)
	}

	var structured *obsgraph.Error
	if !errors.As(err, &structured) {
		t.Fatal("error is not *obsgraph.Error")
	}
	if structured.Field != "size_in_bytes" {
		t.Errorf("error field = %q, want size_in_bytes", structured.Field)
	}
	if structured.Line != 5 {
		t.Errorf("error line = %d, want 5", structured.Line)
	}
}

func TestDanglingRefs(t *testing.T) {
	doc := buildDocument(t)

	// Every reference in the built document is defined within it.
	if refs := doc.DanglingRefs(); len(refs) != 0 {
		t.Errorf("DanglingRefs() = %v, want none", refs)
	}

	orphan, err := graph.NewObjectRef("AddressObjectType-99")
	if err != nil {
		t.Fatal(err)
	}
	doc.Append(orphan)

	refs := doc.DanglingRefs()
	if len(refs) != 1 || refs[0] != "AddressObjectType-99" {
		t.Errorf("DanglingRefs() = %v, want [AddressObjectType-99]", refs)
	}
}

func TestRootFallbackAppliesToDocuments(t *testing.T) {
	reg := newRegistry()
	reg.SetRootDefault(objects.NewFile)

	const doc = `<Observables>
  <Object id="X-1">
    <Properties xsi:type="custom:UnknownType" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
      <file_name>boot.ini</file_name>
    </Properties>
  </Object>
</Observables>`

	parsed, err := DecodeXML(context.Background(), reg, nil, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeXML() with root default error = %v", err)
	}
	if got := parsed.Objects[0].Properties.TypeName(); got != objects.FileType {
		t.Errorf("fallback payload type = %q, want %q", got, objects.FileType)
	}
}
