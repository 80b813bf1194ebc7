package cloudspark

import (
	"fmt"
	"io"
	"time"
)

// CORSRule is one cross-origin access rule for a bucket.
type CORSRule struct {
	AllowedHeaders []string
	AllowedMethods []string
	AllowedOrigins []string
	ExposeHeaders  []string
	MaxAgeSeconds  int32
}

// defaultCORSRules returns the allow-all rule set applied when the caller
// supplies none. Built fresh per call so no shared value can be mutated.
func defaultCORSRules() []CORSRule {
	return []CORSRule{{
		AllowedHeaders: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "HEAD", "DELETE"},
		AllowedOrigins: []string{"*"},
		ExposeHeaders:  []string{},
		MaxAgeSeconds:  3000,
	}}
}

// BucketPolicy is an access-policy document for a bucket.
type BucketPolicy struct {
	Version   string            `json:"Version"`
	Statement []PolicyStatement `json:"Statement"`
}

// PolicyStatement is one statement in a bucket policy. Principal, Action,
// and Resource are loosely typed because the policy language accepts both
// a single string and an array for each.
type PolicyStatement struct {
	Sid       string `json:"Sid,omitempty"`
	Effect    string `json:"Effect"`
	Principal any    `json:"Principal"`
	Action    any    `json:"Action"`
	Resource  any    `json:"Resource"`
}

// defaultBucketPolicy returns the public-read policy applied when the
// caller supplies none. Built fresh per call.
func defaultBucketPolicy(bucket string) *BucketPolicy {
	return &BucketPolicy{
		Version: "2012-10-17",
		Statement: []PolicyStatement{{
			Sid:       "PublicReadGetObject",
			Effect:    "Allow",
			Principal: "*",
			Action:    "s3:*",
			Resource:  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
		}},
	}
}

// PublicAccessBlock holds the four public-access flags for a bucket.
type PublicAccessBlock struct {
	BlockPublicAcls       bool
	IgnorePublicAcls      bool
	BlockPublicPolicy     bool
	RestrictPublicBuckets bool
}

// ObjectMeta describes a stored object.
type ObjectMeta struct {
	Key          string
	Size         int64
	ContentType  string
	ETag         string
	LastModified time.Time
	StorageClass string
}

// Object is a retrieved object: its metadata plus the content stream.
// The caller owns Body and must close it.
type Object struct {
	Meta ObjectMeta
	Body io.ReadCloser
}

// PresignedUpload is the result of presigning a browser-form upload: the
// bucket upload endpoint plus the form fields the client must submit,
// including the signature fields. Fields["key"] always reflects the
// requested object key.
type PresignedUpload struct {
	URL    string
	Fields map[string]string
}
