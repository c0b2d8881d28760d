package document_test

import (
	"context"
	"fmt"

	"github.com/zero-day-ai/obsgraph/document"
	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/graph"
	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/objects"
	"github.com/zero-day-ai/obsgraph/vocab"
)

// Example builds a small document, serializes it, and resolves a
// reference through the identifier store on the way back in.
func Example() {
	ctx := context.Background()
	reg := entity.NewRegistry()
	objects.RegisterDefaults(reg)

	store := ident.NewMemStore()
	gen := ident.NewSequentialGenerator()

	disk, _ := graph.NewObject(ctx, store, gen, objects.NewFile().
		With("file_name", "C:"))
	contained, _ := disk.AddRelated(ctx, store, gen, objects.NewFile().
		With("file_name", "boot.ini"),
		vocab.Relationship(vocab.RelContains), false)

	fmt.Println("disk:", disk.ID)
	fmt.Println("contained ref:", contained.IDRef)

	// The referenced file lives in the store, not in this document, so
	// the document reports it as a dangling (externally defined) ref.
	doc := document.New(disk)
	fmt.Println("dangling refs:", doc.DanglingRefs())

	props, _ := contained.GetProperties(ctx, store)
	name, _ := props.Get("file_name")
	fmt.Println("resolved name:", name)

	// Output:
	// disk: FileObjectType-1
	// contained ref: FileObjectType-2
	// dangling refs: [FileObjectType-2]
	// resolved name: boot.ini
}
