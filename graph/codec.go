package graph

import (
	"context"
	"encoding/json"

	"github.com/zero-day-ai/obsgraph/entity"
	"github.com/zero-day-ai/obsgraph/ident"
)

// StoreCodec returns an ident.Codec that serializes graph objects
// through their map form, so remote stores (Redis, etcd) hand back
// typed *Object values instead of raw JSON maps. Values that are not
// graph objects pass through plain JSON.
func StoreCodec(reg *entity.Registry) ident.Codec {
	return storeCodec{reg: reg}
}

type storeCodec struct {
	reg *entity.Registry
}

func (c storeCodec) Encode(value any) ([]byte, error) {
	var m map[string]any
	var err error

	switch t := value.(type) {
	case *Object:
		m, err = t.ToMap(c.reg)
	case *RelatedObject:
		m, err = t.toMap(c.reg)
	default:
		return json.Marshal(value)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

func (c storeCodec) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}

	m, ok := v.(map[string]any)
	if !ok {
		return v, nil
	}
	_, hasID := m[idKey]
	_, hasIDRef := m[idrefKey]
	if !hasID && !hasIDRef {
		return m, nil
	}

	// Decoding must not re-register: the store is handing the value out,
	// not ingesting a document.
	return FromMap(context.Background(), c.reg, nil, m)
}
