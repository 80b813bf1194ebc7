// Package postpolicy builds, encodes, and signs the POST policy documents
// that back browser-form uploads, and decodes previously issued policies
// for inspection.
//
// A policy document is the JSON object {expiration, conditions} the
// provider evaluates when a signed HTML form is submitted. Encoding is
// Base64 over a compact serialization with stable key order, so encoding
// and decoding a document round-trips its JSON content exactly.
package postpolicy
