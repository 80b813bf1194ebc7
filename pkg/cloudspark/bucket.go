package cloudspark

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// CreateBucket creates the named bucket if it does not exist and binds it
// as the active bucket. An existing bucket is treated as success.
func (s *Session) CreateBucket(ctx context.Context, name string) error {
	if name == "" {
		return &ValidationError{Field: "bucket", Reason: "bucket name must not be empty"}
	}

	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(name),
	})
	if err == nil {
		s.bucket = name
		return nil
	}
	if !isBucketMissing(err) {
		return providerError("create bucket", err)
	}

	input := &s3.CreateBucketInput{
		Bucket: aws.String(name),
	}
	// Location constraint is required outside us-east-1.
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") ||
			strings.Contains(err.Error(), "BucketAlreadyExists") {
			s.bucket = name
			return nil
		}
		return providerError("create bucket", err)
	}

	s.bucket = name
	return nil
}

// isBucketMissing reports whether err means the bucket does not exist.
// Multiple error shapes are checked for MinIO compatibility.
func isBucketMissing(err error) bool {
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	return errors.As(err, &notFound) || errors.As(err, &noSuchBucket) ||
		strings.Contains(err.Error(), "NoSuchBucket") ||
		strings.Contains(err.Error(), "BadRequest")
}

// SetBucketCors sets the CORS configuration on the active bucket. A nil or
// empty rule set applies the allow-all default.
func (s *Session) SetBucketCors(ctx context.Context, rules []CORSRule) error {
	if err := s.requireBucket("set bucket cors"); err != nil {
		return err
	}
	if len(rules) == 0 {
		rules = defaultCORSRules()
	}

	out := make([]types.CORSRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, types.CORSRule{
			AllowedHeaders: r.AllowedHeaders,
			AllowedMethods: r.AllowedMethods,
			AllowedOrigins: r.AllowedOrigins,
			ExposeHeaders:  r.ExposeHeaders,
			MaxAgeSeconds:  aws.Int32(r.MaxAgeSeconds),
		})
	}

	_, err := s.client.PutBucketCors(ctx, &s3.PutBucketCorsInput{
		Bucket:            aws.String(s.bucket),
		CORSConfiguration: &types.CORSConfiguration{CORSRules: out},
	})
	if err != nil {
		return providerError("set bucket cors", err)
	}
	return nil
}

// GetBucketCors returns the CORS configuration of the active bucket.
func (s *Session) GetBucketCors(ctx context.Context) ([]CORSRule, error) {
	if err := s.requireBucket("get bucket cors"); err != nil {
		return nil, err
	}

	out, err := s.client.GetBucketCors(ctx, &s3.GetBucketCorsInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return nil, providerError("get bucket cors", err)
	}

	rules := make([]CORSRule, 0, len(out.CORSRules))
	for _, r := range out.CORSRules {
		rules = append(rules, CORSRule{
			AllowedHeaders: r.AllowedHeaders,
			AllowedMethods: r.AllowedMethods,
			AllowedOrigins: r.AllowedOrigins,
			ExposeHeaders:  r.ExposeHeaders,
			MaxAgeSeconds:  aws.ToInt32(r.MaxAgeSeconds),
		})
	}
	return rules, nil
}

// DeleteBucketCors removes the CORS configuration from the active bucket.
func (s *Session) DeleteBucketCors(ctx context.Context) error {
	if err := s.requireBucket("delete bucket cors"); err != nil {
		return err
	}
	_, err := s.client.DeleteBucketCors(ctx, &s3.DeleteBucketCorsInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return providerError("delete bucket cors", err)
	}
	return nil
}

// SetBucketPolicy sets the access policy on the active bucket. A nil policy
// applies the public-read default.
func (s *Session) SetBucketPolicy(ctx context.Context, policy *BucketPolicy) error {
	if err := s.requireBucket("set bucket policy"); err != nil {
		return err
	}
	if policy == nil {
		policy = defaultBucketPolicy(s.bucket)
	}

	raw, err := json.Marshal(policy)
	if err != nil {
		return &ValidationError{Field: "policy", Reason: "policy document is not serializable", Err: err}
	}
	return s.putBucketPolicy(ctx, string(raw))
}

// SetBucketPolicyJSON sets a raw policy document on the active bucket.
func (s *Session) SetBucketPolicyJSON(ctx context.Context, policy string) error {
	if err := s.requireBucket("set bucket policy"); err != nil {
		return err
	}
	if !json.Valid([]byte(policy)) {
		return &ValidationError{Field: "policy", Reason: "policy document is not valid JSON"}
	}
	return s.putBucketPolicy(ctx, policy)
}

func (s *Session) putBucketPolicy(ctx context.Context, policy string) error {
	_, err := s.client.PutBucketPolicy(ctx, &s3.PutBucketPolicyInput{
		Bucket: aws.String(s.bucket),
		Policy: aws.String(policy),
	})
	if err != nil {
		return providerError("set bucket policy", err)
	}
	return nil
}

// GetBucketPolicy returns the access policy of the active bucket.
func (s *Session) GetBucketPolicy(ctx context.Context) (*BucketPolicy, error) {
	if err := s.requireBucket("get bucket policy"); err != nil {
		return nil, err
	}

	out, err := s.client.GetBucketPolicy(ctx, &s3.GetBucketPolicyInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return nil, providerError("get bucket policy", err)
	}

	var policy BucketPolicy
	if err := json.Unmarshal([]byte(aws.ToString(out.Policy)), &policy); err != nil {
		return nil, &ValidationError{Field: "policy", Reason: "provider returned an unparsable policy", Err: err}
	}
	return &policy, nil
}

// DeleteBucketPolicy removes the access policy from the active bucket.
func (s *Session) DeleteBucketPolicy(ctx context.Context) error {
	if err := s.requireBucket("delete bucket policy"); err != nil {
		return err
	}
	_, err := s.client.DeleteBucketPolicy(ctx, &s3.DeleteBucketPolicyInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return providerError("delete bucket policy", err)
	}
	return nil
}

// PublicAccess blocks or allows public access to the active bucket; all
// four public-access flags mirror the block argument.
func (s *Session) PublicAccess(ctx context.Context, block bool) error {
	if err := s.requireBucket("set public access"); err != nil {
		return err
	}

	_, err := s.client.PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(s.bucket),
		PublicAccessBlockConfiguration: &types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(block),
			IgnorePublicAcls:      aws.Bool(block),
			BlockPublicPolicy:     aws.Bool(block),
			RestrictPublicBuckets: aws.Bool(block),
		},
	})
	if err != nil {
		return providerError("set public access", err)
	}
	return nil
}

// GetPublicAccessBlock returns the public-access settings of the active
// bucket.
func (s *Session) GetPublicAccessBlock(ctx context.Context) (*PublicAccessBlock, error) {
	if err := s.requireBucket("get public access"); err != nil {
		return nil, err
	}

	out, err := s.client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return nil, providerError("get public access", err)
	}

	cfg := out.PublicAccessBlockConfiguration
	if cfg == nil {
		return &PublicAccessBlock{}, nil
	}
	return &PublicAccessBlock{
		BlockPublicAcls:       aws.ToBool(cfg.BlockPublicAcls),
		IgnorePublicAcls:      aws.ToBool(cfg.IgnorePublicAcls),
		BlockPublicPolicy:     aws.ToBool(cfg.BlockPublicPolicy),
		RestrictPublicBuckets: aws.ToBool(cfg.RestrictPublicBuckets),
	}, nil
}

// ListUserPolicies returns the names of the inline policies attached to an
// IAM user.
func (s *Session) ListUserPolicies(ctx context.Context, userName string) ([]string, error) {
	if userName == "" {
		return nil, &ValidationError{Field: "userName", Reason: "user name must not be empty"}
	}

	var names []string
	input := &iam.ListUserPoliciesInput{UserName: aws.String(userName)}
	for {
		out, err := s.iam.ListUserPolicies(ctx, input)
		if err != nil {
			return nil, providerError("list user policies", err)
		}
		names = append(names, out.PolicyNames...)
		if !out.IsTruncated {
			return names, nil
		}
		input.Marker = out.Marker
	}
}
