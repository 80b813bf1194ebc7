package cloudspark

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/muhammedrahil/cloudspark/pkg/cloudspark/postpolicy"
)

// DefaultExpirySeconds is the validity window applied when a presign
// request does not specify one.
const DefaultExpirySeconds = 3600

// WildcardSuffix marks a templated object key whose final segment is chosen
// by the uploader. It switches the policy's key condition from equality to
// a prefix match; this is the only branching rule in condition assembly.
const WildcardSuffix = "*"

// URLOption configures a presigned get/delete URL.
type URLOption func(*urlOptions)

type urlOptions struct {
	expiresIn *int64
}

// WithExpirySeconds sets the validity window of a presigned URL in seconds.
// Non-positive values are rejected at call time.
func WithExpirySeconds(seconds int64) URLOption {
	return func(o *urlOptions) {
		o.expiresIn = aws.Int64(seconds)
	}
}

// resolveExpiry applies the default for an unset window and rejects
// explicit non-positive values.
func resolveExpiry(expiresIn *int64) (time.Duration, error) {
	if expiresIn == nil {
		return DefaultExpirySeconds * time.Second, nil
	}
	if *expiresIn <= 0 {
		return 0, &ValidationError{Field: "expiresIn", Reason: "expiration must be a positive number of seconds"}
	}
	return time.Duration(*expiresIn) * time.Second, nil
}

// PresignedCreateURL builds a signed browser-form upload for an object in
// the active bucket: the upload endpoint plus the form fields, including
// the signed policy document. Signing happens locally against the session
// credentials; no request is sent to the provider.
func (s *Session) PresignedCreateURL(ctx context.Context, req CreateURLRequest) (*PresignedUpload, error) {
	if err := s.requireBucket("presign create url"); err != nil {
		return nil, err
	}
	if req.ObjectKey == "" {
		return nil, &ValidationError{Field: "objectKey", Reason: "object key must not be empty"}
	}
	expiry, err := resolveExpiry(req.ExpiresIn)
	if err != nil {
		return nil, err
	}

	creds, err := s.awsCfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, providerError("presign create url", err)
	}
	signer := postpolicy.NewSigner(creds, s.region)
	now := s.now().UTC()

	formKey := req.ObjectKey
	keyCondition := postpolicy.Condition(postpolicy.ExactMatch{Field: "key", Value: req.ObjectKey})
	if prefix, ok := strings.CutSuffix(req.ObjectKey, WildcardSuffix); ok {
		keyCondition = postpolicy.StartsWith{Field: "key", Prefix: prefix}
		formKey = prefix + "${filename}"
	}

	// Base conditions, then caller conditions in the order supplied, then
	// the signature metadata entries. Nothing is deduplicated; the
	// provider evaluates the list as a conjunction.
	conditions := []any{
		postpolicy.ExactMatch{Field: "bucket", Value: s.bucket},
		keyCondition,
	}
	for _, c := range req.Conditions {
		conditions = append(conditions, c)
	}
	for _, c := range signer.MetadataConditions(now) {
		conditions = append(conditions, c)
	}

	doc := postpolicy.Document{
		Expiration: now.Add(expiry).Format(postpolicy.TimeFormat),
		Conditions: conditions,
	}
	encoded, err := doc.Encode()
	if err != nil {
		return nil, &ValidationError{Field: "conditions", Reason: "policy document is not serializable", Err: err}
	}

	fields := make(map[string]string, len(req.Fields)+8)
	for k, v := range req.Fields {
		fields[k] = v
	}
	// Protocol-reserved names always take the system value.
	for k, v := range signer.Sign(encoded, now) {
		fields[k] = v
	}
	fields[postpolicy.FieldKey] = formKey

	return &PresignedUpload{URL: s.uploadEndpoint(req.Params), Fields: fields}, nil
}

// PresignedGetURL returns a query-signed URL for downloading an object from
// the active bucket.
func (s *Session) PresignedGetURL(ctx context.Context, objectKey string, opts ...URLOption) (string, error) {
	return s.presignURL(ctx, http.MethodGet, objectKey, opts)
}

// PresignedDeleteURL returns a query-signed URL for deleting an object from
// the active bucket.
func (s *Session) PresignedDeleteURL(ctx context.Context, objectKey string, opts ...URLOption) (string, error) {
	return s.presignURL(ctx, http.MethodDelete, objectKey, opts)
}

func (s *Session) presignURL(ctx context.Context, method, objectKey string, opts []URLOption) (string, error) {
	if err := s.requireBucket("presign url"); err != nil {
		return "", err
	}
	if objectKey == "" {
		return "", &ValidationError{Field: "objectKey", Reason: "object key must not be empty"}
	}

	var o urlOptions
	for _, opt := range opts {
		opt(&o)
	}
	expiry, err := resolveExpiry(o.expiresIn)
	if err != nil {
		return "", err
	}

	withExpiry := func(po *s3.PresignOptions) {
		po.Expires = expiry
	}

	switch method {
	case http.MethodGet:
		out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectKey),
		}, withExpiry)
		if err != nil {
			return "", providerError("presign get url", err)
		}
		return out.URL, nil
	case http.MethodDelete:
		out, err := s.presign.PresignDeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectKey),
		}, withExpiry)
		if err != nil {
			return "", providerError("presign delete url", err)
		}
		return out.URL, nil
	default:
		return "", &ValidationError{Field: "method", Reason: fmt.Sprintf("unsupported method %q", method)}
	}
}

// uploadEndpoint is the base form-upload URL for the active bucket:
// virtual-host style against AWS, path style against a custom endpoint.
// Extra request parameters become the query string.
func (s *Session) uploadEndpoint(params map[string]string) string {
	var endpoint string
	if s.endpoint != "" {
		endpoint = strings.TrimRight(s.endpoint, "/") + "/" + s.bucket
	} else {
		endpoint = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
	}

	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		endpoint += "?" + q.Encode()
	}
	return endpoint
}

// PolicyDecode decodes a Base64 policy document (provider-issued or
// self-produced) into an indented JSON string for inspection.
func PolicyDecode(encoded string) (string, error) {
	pretty, err := postpolicy.Decode(encoded)
	if err != nil {
		if errors.Is(err, postpolicy.ErrInvalidBase64) {
			return "", &ValidationError{Field: "policy", Reason: "policy is not valid base64", Err: err}
		}
		return "", &ValidationError{Field: "policy", Reason: "policy payload is not valid JSON", Err: err}
	}
	return pretty, nil
}
