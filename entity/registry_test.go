package entity

import (
	"errors"
	"testing"

	"github.com/zero-day-ai/obsgraph"
)

func TestRegistryResolve(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Foo", newFileEntity)
	reg.Register("Bar", newAddressEntity)

	ctor, err := reg.Resolve("Foo")
	if err != nil {
		t.Fatalf("Resolve(Foo) error = %v", err)
	}
	if got := ctor().TypeName(); got != "FileObjectType" {
		t.Errorf("resolved constructor built %q, want FileObjectType", got)
	}

	// Namespace prefixes are stripped before lookup.
	if _, err := reg.Resolve("ns:Foo"); err != nil {
		t.Errorf("Resolve(ns:Foo) error = %v, want prefix-stripped match", err)
	}

	_, err = reg.Resolve("ns:Baz")
	if err == nil {
		t.Fatal("Resolve(ns:Baz) error = nil, want ErrUnknownDiscriminator")
	}
	if !errors.Is(err, obsgraph.ErrUnknownDiscriminator) {
		t.Errorf("Resolve(ns:Baz) error = %v, want ErrUnknownDiscriminator", err)
	}
}

func TestRegistryLookupIsCaseSensitive(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Foo", newFileEntity)

	if _, err := reg.Resolve("foo"); err == nil {
		t.Error("Resolve(foo) error = nil, want case-sensitive miss")
	}
}

func TestRegisterIdempotentAndConflicting(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Foo", newFileEntity)

	// Same discriminator, same constructor: no-op.
	reg.Register("Foo", newFileEntity)

	defer func() {
		if recover() == nil {
			t.Error("re-registering Foo to a different constructor did not panic")
		}
	}()
	reg.Register("Foo", newAddressEntity)
}

func TestIsAbstract(t *testing.T) {
	reg := newTestRegistry()

	if !reg.IsAbstract("ObjectPropertiesType") {
		t.Error("IsAbstract(ObjectPropertiesType) = false, want true (two implementers, no constructor)")
	}
	if reg.IsAbstract("HashType") {
		t.Error("IsAbstract(HashType) = true, want false (monomorphic)")
	}
	if reg.IsAbstract("NeverRegistered") {
		t.Error("IsAbstract(NeverRegistered) = true, want false")
	}
	if !reg.IsAbstract("cybox:ObjectPropertiesType") {
		t.Error("IsAbstract with namespace prefix = false, want prefix-stripped true")
	}
}

func TestResolveRootFallback(t *testing.T) {
	reg := newTestRegistry()

	// Without a designated default, unknown roots stay hard errors.
	if _, err := reg.ResolveRoot("ns:Mystery"); !errors.Is(err, obsgraph.ErrUnknownDiscriminator) {
		t.Errorf("ResolveRoot without default error = %v, want ErrUnknownDiscriminator", err)
	}

	reg.SetRootDefault(newFileEntity)

	ctor, err := reg.ResolveRoot("ns:Mystery")
	if err != nil {
		t.Fatalf("ResolveRoot with default error = %v", err)
	}
	if got := ctor().TypeName(); got != "FileObjectType" {
		t.Errorf("root fallback built %q, want FileObjectType", got)
	}

	// Known discriminators still resolve exactly, not to the default.
	ctor, err = reg.ResolveRoot("AddressObjectType")
	if err != nil {
		t.Fatalf("ResolveRoot(AddressObjectType) error = %v", err)
	}
	if got := ctor().TypeName(); got != "AddressObjectType" {
		t.Errorf("ResolveRoot(AddressObjectType) built %q, want AddressObjectType", got)
	}
}

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ns:Foo", "Foo"},
		{"Foo", "Foo"},
		{"a:b:c", "b:c"},
		{":Foo", "Foo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripPrefix(tt.in); got != tt.want {
			t.Errorf("StripPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestImplementers(t *testing.T) {
	reg := newTestRegistry()

	impls := reg.Implementers("ObjectPropertiesType")
	if len(impls) != 2 {
		t.Fatalf("Implementers() returned %d entries, want 2", len(impls))
	}
	found := map[string]bool{}
	for _, d := range impls {
		found[d] = true
	}
	if !found["FileObjectType"] || !found["AddressObjectType"] {
		t.Errorf("Implementers() = %v, want FileObjectType and AddressObjectType", impls)
	}
}

func TestDefaultRegistryReplaceable(t *testing.T) {
	orig := DefaultRegistry()
	defer SetDefaultRegistry(orig)

	fresh := NewRegistry()
	SetDefaultRegistry(fresh)
	if DefaultRegistry() != fresh {
		t.Error("DefaultRegistry() did not return the registry set by SetDefaultRegistry")
	}
}
