package strapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRef struct {
	ID         int    `json:"id"`
	DocumentID string `json:"documentId"`
}

func TestRelationDecodesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *string
	}{
		{"flat", `{"id":7,"documentId":"abc"}`, ptr("abc")},
		{"nested", `{"data":{"id":7,"documentId":"abc"}}`, ptr("abc")},
		{"nested null", `{"data":null}`, nil},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rel Relation[testRef]
			require.NoError(t, json.Unmarshal([]byte(tt.in), &rel))
			if tt.want == nil {
				assert.Nil(t, rel.Value)
				return
			}
			require.NotNil(t, rel.Value)
			assert.Equal(t, *tt.want, rel.Value.DocumentID)
			assert.Equal(t, 7, rel.Value.ID)
		})
	}
}

func TestRelationBothShapesExtractSameID(t *testing.T) {
	var flat, nested Relation[testRef]
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"documentId":"xyz"}`), &flat))
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"id":3,"documentId":"xyz"}}`), &nested))
	assert.Equal(t, flat.Value.DocumentID, nested.Value.DocumentID)
}

func TestRelationAbsentField(t *testing.T) {
	var holder struct {
		Author Relation[testRef] `json:"author"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &holder))
	assert.Nil(t, holder.Author.Value)
}

func TestRelationListDecodesBothShapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"flat array", `[{"id":1,"documentId":"a"},{"id":2,"documentId":"b"}]`, 2},
		{"nested array", `{"data":[{"id":1,"documentId":"a"}]}`, 1},
		{"nested null", `{"data":null}`, 0},
		{"null", `null`, 0},
		{"empty array", `[]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rel RelationList[testRef]
			require.NoError(t, json.Unmarshal([]byte(tt.in), &rel))
			assert.Len(t, rel.Values, tt.want)
		})
	}
}

func TestQueryEncode(t *testing.T) {
	q := Query{
		Populate: []string{"categories", "images"},
		Sort:     []string{"matchDate:desc"},
		Filters:  map[string]string{"author.documentId": "user-1"},
		Page:     2,
		PageSize: 10,
	}
	encoded := q.Encode()

	assert.Contains(t, encoded, "populate%5B0%5D=categories")
	assert.Contains(t, encoded, "populate%5B1%5D=images")
	assert.Contains(t, encoded, "sort%5B0%5D=matchDate%3Adesc")
	assert.Contains(t, encoded, "filters%5Bauthor%5D%5BdocumentId%5D%5B%24eq%5D=user-1")
	assert.Contains(t, encoded, "pagination%5Bpage%5D=2")
	assert.Contains(t, encoded, "pagination%5BpageSize%5D=10")

	assert.Empty(t, Query{}.Encode())
}

func ptr(s string) *string { return &s }
