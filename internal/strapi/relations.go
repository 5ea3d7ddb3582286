package strapi

import (
	"bytes"
	"encoding/json"
)

// The store has shipped two wire shapes for relation fields over its
// versions: flattened ({ "id": 1, "documentId": "..." }) and nested
// ({ "data": { ... } | null }). Records written under either version coexist,
// so every relation decode accepts both and normalizes to the flat shape.
// The tagged-union check lives here and never leaks past decoding.

// Relation is a to-one relation field in either wire shape. After decoding,
// Value is nil when the relation is absent (JSON null, {"data":null}, or the
// field missing entirely).
type Relation[T any] struct {
	Value *T
}

func (r *Relation[T]) UnmarshalJSON(b []byte) error {
	raw, err := unwrapRelation(b)
	if err != nil {
		return err
	}
	if raw == nil {
		r.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	r.Value = &v
	return nil
}

// RelationList is a to-many relation field in either wire shape:
// [ ... ] or { "data": [ ... ] | null }.
type RelationList[T any] struct {
	Values []T
}

func (r *RelationList[T]) UnmarshalJSON(b []byte) error {
	raw, err := unwrapRelation(b)
	if err != nil {
		return err
	}
	if raw == nil {
		r.Values = nil
		return nil
	}
	return json.Unmarshal(raw, &r.Values)
}

// unwrapRelation peels the nested {"data": ...} envelope if present.
// A nil result means the relation is absent.
func unwrapRelation(b []byte) (json.RawMessage, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	if b[0] != '{' {
		// Arrays and scalars are already flat.
		return b, nil
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, err
	}
	data, ok := probe["data"]
	if !ok {
		return b, nil
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	return data, nil
}
