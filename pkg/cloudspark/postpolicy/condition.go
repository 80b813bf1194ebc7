package postpolicy

import "encoding/json"

// Condition is one entry in a policy document's condition list. The
// provider supports two wire shapes: a single-key map for exact matches and
// a three-element array for operator conditions.
type Condition interface {
	json.Marshaler
	condition()
}

// ExactMatch is the single-key map form {"field": "value"}, used for the
// base bucket/key entries and the signature metadata entries.
type ExactMatch struct {
	Field string
	Value string
}

func (c ExactMatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{c.Field: c.Value})
}

func (ExactMatch) condition() {}

// Equals pins a form field to an exact value in the array form:
// ["eq", "$field", "value"].
type Equals struct {
	Field string
	Value string
}

func (c Equals) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"eq", "$" + c.Field, c.Value})
}

func (Equals) condition() {}

// StartsWith constrains a form field to a prefix:
// ["starts-with", "$field", "prefix"]. An empty prefix admits any value.
type StartsWith struct {
	Field  string
	Prefix string
}

func (c StartsWith) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"starts-with", "$" + c.Field, c.Prefix})
}

func (StartsWith) condition() {}

// ContentLengthRange bounds the uploaded body size in bytes, inclusive:
// ["content-length-range", min, max]. This is the provider's only
// documented range operator.
type ContentLengthRange struct {
	Min int64
	Max int64
}

func (c ContentLengthRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{"content-length-range", c.Min, c.Max})
}

func (ContentLengthRange) condition() {}
