package postpolicy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// SigningAlgorithm is the only algorithm accepted for signed form uploads.
const SigningAlgorithm = "AWS4-HMAC-SHA256"

// Form field names reserved for the signed upload protocol.
// Caller-supplied fields never override these.
const (
	FieldKey           = "key"
	FieldPolicy        = "policy"
	FieldAlgorithm     = "x-amz-algorithm"
	FieldCredential    = "x-amz-credential"
	FieldDate          = "x-amz-date"
	FieldSecurityToken = "x-amz-security-token"
	FieldSignature     = "x-amz-signature"
)

// Signer computes Signature Version 4 signatures over encoded policy
// documents for a fixed credential/region pair.
type Signer struct {
	credentials aws.Credentials
	region      string
}

func NewSigner(credentials aws.Credentials, region string) *Signer {
	return &Signer{credentials: credentials, region: region}
}

// Scope returns the credential scope for the given signing time:
// accessKey/yyyymmdd/region/s3/aws4_request.
func (s *Signer) Scope(at time.Time) string {
	return fmt.Sprintf("%s/%s/%s/s3/aws4_request",
		s.credentials.AccessKeyID, shortDate(at), s.region)
}

// MetadataConditions returns the signature metadata entries every signed
// form must satisfy, in protocol order. The security-token entry is present
// only for temporary credentials.
func (s *Signer) MetadataConditions(at time.Time) []Condition {
	conds := []Condition{
		ExactMatch{Field: FieldAlgorithm, Value: SigningAlgorithm},
		ExactMatch{Field: FieldCredential, Value: s.Scope(at)},
		ExactMatch{Field: FieldDate, Value: amzDate(at)},
	}
	if s.credentials.SessionToken != "" {
		conds = append(conds, ExactMatch{Field: FieldSecurityToken, Value: s.credentials.SessionToken})
	}
	return conds
}

// Sign signs the encoded policy and returns the signed form field set. The
// key field is owned by the caller and not included here.
func (s *Signer) Sign(encodedPolicy string, at time.Time) map[string]string {
	key := signingKey(s.credentials.SecretAccessKey, shortDate(at), s.region)

	fields := map[string]string{
		FieldPolicy:     encodedPolicy,
		FieldAlgorithm:  SigningAlgorithm,
		FieldCredential: s.Scope(at),
		FieldDate:       amzDate(at),
		FieldSignature:  hex.EncodeToString(hmacSHA256(key, encodedPolicy)),
	}
	if s.credentials.SessionToken != "" {
		fields[FieldSecurityToken] = s.credentials.SessionToken
	}
	return fields
}

func shortDate(at time.Time) string {
	return at.UTC().Format("20060102")
}

func amzDate(at time.Time) string {
	return at.UTC().Format("20060102T150405Z")
}

// signingKey derives the V4 key chain:
// AWS4+secret -> date -> region -> s3 -> aws4_request.
func signingKey(secret, date, region string) []byte {
	k := hmacSHA256([]byte("AWS4"+secret), date)
	k = hmacSHA256(k, region)
	k = hmacSHA256(k, "s3")
	return hmacSHA256(k, "aws4_request")
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}
