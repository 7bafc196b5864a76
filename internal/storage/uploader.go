// Package storage stores uploaded message files in S3 and derives their
// object keys.
package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/okelab/line-bot-lambda/internal/common"
)

// S3API is the slice of the S3 client the uploader needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader writes message file bytes into a single pre-existing bucket.
type Uploader struct {
	client S3API
	bucket string
}

func NewUploader(client S3API, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// Put stores data under key with the given content type. Failures wrap
// common.ErrStorageWrite; callers log and move on, they never retry.
func (u *Uploader) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("%w: put %s/%s: %v", common.ErrStorageWrite, u.bucket, key, err)
	}
	return nil
}
