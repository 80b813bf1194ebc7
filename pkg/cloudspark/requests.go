package cloudspark

import "github.com/muhammedrahil/cloudspark/pkg/cloudspark/postpolicy"

// CreateURLRequest describes a browser-form upload to presign.
type CreateURLRequest struct {
	// ObjectKey is the target object path within the active bucket. A
	// trailing "*" marks a templated key: the key condition becomes a
	// prefix match and the uploader supplies the final segment via
	// ${filename}.
	ObjectKey string

	// ExpiresIn is the validity window in seconds. Nil applies
	// DefaultExpirySeconds; explicit non-positive values are rejected.
	ExpiresIn *int64

	// Params are merged into the upload URL's query string.
	Params map[string]string

	// Fields are pre-filled form fields, included verbatim. For the
	// protocol-reserved names (key, policy, and the x-amz signature
	// fields) the system-generated value always wins; callers win for
	// every other name.
	Fields map[string]string

	// Conditions are appended after the base bucket/key conditions,
	// preserving order. The provider evaluates the list as a conjunction;
	// duplicate or conflicting entries are the caller's responsibility
	// and are not deduplicated.
	Conditions []postpolicy.Condition
}
