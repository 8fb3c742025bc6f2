package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Score int               `json:"score"`
	Tags  []string          `json:"tags,omitempty"`
	Meta  map[string]string `json:"meta,omitempty"`
}

func (i item) GetID() string { return i.ID }

func TestDecodeAbsentOrBlank(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		present bool
	}{
		{"absent", "", false},
		{"blank", "  \n", true},
		{"null", "null", true},
		{"empty array", "[]", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[item](tt.raw, tt.present)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeCorrupt(t *testing.T) {
	for _, raw := range []string{"{not json", `{"id":"1"}`, `[{"id":1}]`} {
		_, err := Decode[item](raw, true)
		assert.ErrorIs(t, err, ErrCorrupt, "payload %q", raw)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	in := []item{
		{ID: "1", Name: "Ada", Score: 7, Tags: []string{"go", "sql"}},
		{ID: "2", Name: "Linus", Meta: map[string]string{"source": "referral"}},
	}
	raw, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode[item](raw, true)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeNil(t *testing.T) {
	raw, err := Encode[item](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestDocumentRoundTrip(t *testing.T) {
	in := []Document{{"id": "a", "n": float64(1), "ok": true, "nested": map[string]any{"x": []any{"y"}}}}
	raw, err := Encode(in)
	require.NoError(t, err)
	out, err := Decode[Document](raw, true)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, "a", out[0].GetID())
	assert.Empty(t, Document{"id": 5}.GetID())
}
