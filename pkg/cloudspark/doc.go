// Package cloudspark is a thin convenience layer over the AWS S3 SDK for
// application backends: bucket creation, CORS and bucket-policy management,
// public-access blocking, object upload/retrieve/delete/list, and presigned
// URL generation for frontends that need time-limited, credential-free
// upload or delete links.
//
// A Session holds the credential context and a single active bucket
// binding. Every operation is a synchronous pass-through to the provider
// SDK wrapped in local validation and default-filling; validation failures
// are reported before any network call, and provider rejections are wrapped
// once in a ProviderError with the service code and message preserved,
// never retried.
//
// A Session is not safe for concurrent mutation. Callers that need to issue
// presigned URLs concurrently should use independent sessions or serialize
// access to a shared one.
package cloudspark
