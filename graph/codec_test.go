package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/obsgraph/ident"
	"github.com/zero-day-ai/obsgraph/vocab"
)

func TestStoreCodecRoundTrip(t *testing.T) {
	reg := newTestRegistry()
	codec := StoreCodec(reg)

	o := buildSample(t, nil)

	data, err := codec.Encode(o)
	require.NoError(t, err)

	v, err := codec.Decode(data)
	require.NoError(t, err)

	back, ok := v.(*Object)
	require.True(t, ok, "Decode() returned %T, want *Object", v)
	require.True(t, o.Equal(back), "object did not survive codec round trip")
}

func TestStoreCodecPassThrough(t *testing.T) {
	codec := StoreCodec(newTestRegistry())

	data, err := codec.Encode(map[string]any{"plain": "value"})
	require.NoError(t, err)

	v, err := codec.Decode(data)
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "value", m["plain"])
}

func TestStoreCodecWithRedis(t *testing.T) {
	// End to end: objects written through a Redis store come back typed.
	reg := newTestRegistry()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	store, err := ident.NewRedisStore(ident.RedisOptions{
		URL:   fmt.Sprintf("redis://%s", mr.Addr()),
		Codec: StoreCodec(reg),
	})
	require.NoError(t, err)
	defer store.Close()

	gen := ident.NewSequentialGenerator()
	target, err := NewObject(ctx, store, gen, newAddressProps().With("address_value", "10.0.0.1"))
	require.NoError(t, err)

	ref, err := NewReference(target, vocab.Relationship(vocab.RelResolvedTo))
	require.NoError(t, err)

	props, err := ref.GetProperties(ctx, store)
	require.NoError(t, err)

	v, ok := props.Get("address_value")
	require.True(t, ok)
	require.Equal(t, "10.0.0.1", v)
}
