package postpolicy

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// TimeFormat is the expiration timestamp layout: ISO 8601 at second
// precision with a literal Z suffix.
const TimeFormat = "2006-01-02T15:04:05Z"

// Decode stage errors. Callers can distinguish a malformed Base64 wrapper
// from a malformed JSON payload.
var (
	ErrInvalidBase64 = errors.New("postpolicy: policy is not valid base64")
	ErrInvalidJSON   = errors.New("postpolicy: policy payload is not valid JSON")
)

// Document is a POST policy document. Conditions hold Condition values in
// evaluation order; the provider treats the list as a conjunction.
type Document struct {
	Expiration string `json:"expiration"`
	Conditions []any  `json:"conditions"`
}

// Encode serializes the document with stable key order (expiration, then
// conditions) and no extraneous whitespace, then Base64-encodes the result.
func (d Document) Encode() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("postpolicy: encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode for human inspection: the Base64 string is decoded
// and the JSON payload re-serialized with indentation. The contract is
// textual round-trip fidelity of the JSON content, not of whitespace.
func Decode(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return string(pretty), nil
}
