package postpolicy

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := Document{
		Expiration: "2026-08-25T12:00:00Z",
		Conditions: []any{
			ExactMatch{Field: "bucket", Value: "videos"},
			ExactMatch{Field: "key", Value: "clip.mp4"},
			Equals{Field: "Content-Type", Value: "video/mp4"},
			ContentLengthRange{Min: 1, Max: 10485760},
		},
	}

	encoded, err := doc.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var want, got any
	require.NoError(t, json.Unmarshal(raw, &want))
	require.NoError(t, json.Unmarshal([]byte(decoded), &got))
	assert.Equal(t, want, got)
}

func TestEncodeStableKeyOrder(t *testing.T) {
	doc := Document{
		Expiration: "2026-08-25T12:00:00Z",
		Conditions: []any{ExactMatch{Field: "bucket", Value: "b"}},
	}

	encoded, err := doc.Encode()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), `{"expiration":`))
	assert.NotContains(t, string(raw), "\n")
}

func TestDecodePreservesConditionOrder(t *testing.T) {
	doc := Document{
		Expiration: "2026-08-25T12:00:00Z",
		Conditions: []any{
			ExactMatch{Field: "bucket", Value: "videos"},
			ExactMatch{Field: "key", Value: "clip.mp4"},
			Equals{Field: "Content-Type", Value: "video/mp4"},
		},
	}

	encoded, err := doc.Encode()
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	var parsed struct {
		Conditions []any `json:"conditions"`
	}
	require.NoError(t, json.Unmarshal([]byte(decoded), &parsed))
	require.Len(t, parsed.Conditions, 3)

	assert.Equal(t, map[string]any{"bucket": "videos"}, parsed.Conditions[0])
	assert.Equal(t, map[string]any{"key": "clip.mp4"}, parsed.Conditions[1])
	assert.Equal(t, []any{"eq", "$Content-Type", "video/mp4"}, parsed.Conditions[2])
}

func TestDecodeInvalidBase64(t *testing.T) {
	_, err := Decode("not base64!!")
	assert.ErrorIs(t, err, ErrInvalidBase64)
}

func TestDecodeInvalidJSON(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"expiration":`))
	_, err := Decode(encoded)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestConditionWireForms(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		want string
	}{
		{"exact match", ExactMatch{Field: "bucket", Value: "videos"}, `{"bucket":"videos"}`},
		{"eq", Equals{Field: "acl", Value: "public-read"}, `["eq","$acl","public-read"]`},
		{"starts-with", StartsWith{Field: "key", Prefix: "uploads/"}, `["starts-with","$key","uploads/"]`},
		{"content-length-range", ContentLengthRange{Min: 0, Max: 1048576}, `["content-length-range",0,1048576]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.cond)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(raw))
		})
	}
}
