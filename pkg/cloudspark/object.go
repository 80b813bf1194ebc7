package cloudspark

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadObject streams r to the active bucket under key.
func (s *Session) UploadObject(ctx context.Context, r io.Reader, key string) error {
	if err := s.requireBucket("upload object"); err != nil {
		return err
	}
	if key == "" {
		return &ValidationError{Field: "key", Reason: "object key must not be empty"}
	}

	uploader := manager.NewUploader(s.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return providerError("upload object", err)
	}
	return nil
}

// GetObject retrieves an object from the active bucket. The caller must
// close the returned Body.
func (s *Session) GetObject(ctx context.Context, key string) (*Object, error) {
	if err := s.requireBucket("get object"); err != nil {
		return nil, err
	}
	if key == "" {
		return nil, &ValidationError{Field: "key", Reason: "object key must not be empty"}
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, providerError("get object", err)
	}

	meta := ObjectMeta{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: "application/octet-stream",
		ETag:        strings.Trim(aws.ToString(out.ETag), `"`),
	}
	if out.ContentType != nil {
		meta.ContentType = *out.ContentType
	}
	if out.LastModified != nil {
		meta.LastModified = *out.LastModified
	}

	return &Object{Meta: meta, Body: out.Body}, nil
}

// DeleteObject removes an object from the active bucket.
func (s *Session) DeleteObject(ctx context.Context, key string) error {
	if err := s.requireBucket("delete object"); err != nil {
		return err
	}
	if key == "" {
		return &ValidationError{Field: "key", Reason: "object key must not be empty"}
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return providerError("delete object", err)
	}
	return nil
}

// ListObjects returns metadata for every object in the active bucket. An
// empty bucket yields an empty slice.
func (s *Session) ListObjects(ctx context.Context) ([]ObjectMeta, error) {
	if err := s.requireBucket("list objects"); err != nil {
		return nil, err
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})

	metas := []ObjectMeta{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, providerError("list objects", err)
		}
		for _, obj := range page.Contents {
			m := ObjectMeta{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				ETag:         strings.Trim(aws.ToString(obj.ETag), `"`),
				StorageClass: string(obj.StorageClass),
			}
			if obj.LastModified != nil {
				m.LastModified = *obj.LastModified
			}
			metas = append(metas, m)
		}
	}
	return metas, nil
}

// ListObjectKeys returns only the keys of the objects in the active bucket.
func (s *Session) ListObjectKeys(ctx context.Context) ([]string, error) {
	metas, err := s.ListObjects(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(metas))
	for _, m := range metas {
		keys = append(keys, m.Key)
	}
	return keys, nil
}
