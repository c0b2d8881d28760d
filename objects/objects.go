// Package objects provides the built-in observable entity types and
// registers them with the default type registry on import.
//
// Each type is a descriptor-defined entity; the constructors here are
// what the registry resolves discriminators to. Callers composing their
// own type library can register these (or their own types) into a
// private registry with RegisterDefaults.
package objects

import (
	"github.com/zero-day-ai/obsgraph/entity"
)

// ObjectPropertiesBase is the abstract base all object property types
// implement. Fields declared against it are polymorphic and carry an
// xsi:type discriminator on the wire.
const ObjectPropertiesBase = "ObjectPropertiesType"

// Discriminators of the built-in types.
const (
	AddressType                 = "AddressObjectType"
	FileType                    = "FileObjectType"
	HashType                    = "HashType"
	PackerType                  = "PackerType"
	EnvironmentVariableType     = "EnvironmentVariableType"
	EnvironmentVariableListType = "EnvironmentVariableListType"
)

// Address categories.
const (
	CategoryIPV4  = "ipv4-addr"
	CategoryIPV6  = "ipv6-addr"
	CategoryMAC   = "mac"
	CategoryEmail = "e-mail"
)

// NewAddress creates an empty address observable. The address value is
// required; category says what kind of address it is.
func NewAddress() *entity.Entity {
	return entity.MustNew(AddressType, []entity.Descriptor{
		{WireName: "category", Kind: entity.ScalarOf(entity.String), Attr: true},
		{WireName: "is_spoofed", Kind: entity.ScalarOf(entity.Boolean), Attr: true},
		{WireName: "address_value", Kind: entity.ScalarOf(entity.String), Required: true},
	})
}

// NewHash creates an empty hash record (digest type plus value).
func NewHash() *entity.Entity {
	return entity.MustNew(HashType, []entity.Descriptor{
		{WireName: "type", Kind: entity.ScalarOf(entity.String)},
		{WireName: "simple_hash_value", Kind: entity.ScalarOf(entity.String), Required: true},
	})
}

// NewPacker creates an empty packer record describing the tool a file
// was packed with.
func NewPacker() *entity.Entity {
	return entity.MustNew(PackerType, []entity.Descriptor{
		{WireName: "name", Kind: entity.ScalarOf(entity.String), Required: true},
		{WireName: "version", Kind: entity.ScalarOf(entity.String)},
		{WireName: "detected_entropy", Kind: entity.ScalarOf(entity.DecimalKind)},
	})
}

// NewFile creates an empty file observable.
func NewFile() *entity.Entity {
	return entity.MustNew(FileType, []entity.Descriptor{
		{WireName: "is_packed", Kind: entity.ScalarOf(entity.Boolean), Attr: true},
		{WireName: "file_name", Kind: entity.ScalarOf(entity.String), Required: true},
		{WireName: "file_path", Kind: entity.ScalarOf(entity.String)},
		{WireName: "file_extension", Kind: entity.ScalarOf(entity.String)},
		{WireName: "size_in_bytes", Kind: entity.ScalarOf(entity.Integer)},
		{WireName: "peak_entropy", Kind: entity.ScalarOf(entity.DecimalKind)},
		{WireName: "packer", Kind: entity.NestedOf(PackerType)},
		{WireName: "hashes", Kind: entity.ListOf(entity.NestedOf(HashType))},
	})
}

// NewEnvironmentVariable creates an empty name/value pair.
func NewEnvironmentVariable() *entity.Entity {
	return entity.MustNew(EnvironmentVariableType, []entity.Descriptor{
		{WireName: "name", Kind: entity.ScalarOf(entity.String), Required: true},
		{WireName: "value", Kind: entity.ScalarOf(entity.String)},
	})
}

// NewEnvironmentVariableList creates an empty environment variable
// collection observable.
func NewEnvironmentVariableList() *entity.Entity {
	return entity.MustNew(EnvironmentVariableListType, []entity.Descriptor{
		{WireName: "environment_variable", Kind: entity.ListOf(entity.NestedOf(EnvironmentVariableType))},
	})
}

// RegisterDefaults registers the built-in types into reg. Object
// property types are bound to ObjectPropertiesBase; supporting types
// (hashes, single environment variables) are resolvable but not
// payloads in their own right.
func RegisterDefaults(reg *entity.Registry) {
	reg.Register(AddressType, NewAddress, entity.WithBase(ObjectPropertiesBase))
	reg.Register(FileType, NewFile, entity.WithBase(ObjectPropertiesBase))
	reg.Register(EnvironmentVariableListType, NewEnvironmentVariableList, entity.WithBase(ObjectPropertiesBase))
	reg.Register(HashType, NewHash)
	reg.Register(PackerType, NewPacker)
	reg.Register(EnvironmentVariableType, NewEnvironmentVariable)
}

func init() {
	RegisterDefaults(entity.DefaultRegistry())
}
