package aws

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client used by the artifact archiver.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ArtifactArchiver uploads a copy of the inventory payload to S3 so that
// past setup runs stay inspectable after the local artifact is overwritten.
type ArtifactArchiver struct {
	api    S3API
	bucket string
}

func NewArtifactArchiver(api S3API, bucket string) *ArtifactArchiver {
	return &ArtifactArchiver{api: api, bucket: bucket}
}

// Archive stores the payload under provision-artifacts/<setupID>/<ts>.json
// and returns the object key.
func (a *ArtifactArchiver) Archive(ctx context.Context, setupID string, data []byte) (string, error) {
	key := path.Join("provision-artifacts", setupID, time.Now().UTC().Format("20060102T150405Z")+".json")

	_, err := a.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(a.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: s3types.ServerSideEncryption("AES256"),
	})
	if err != nil {
		return "", fmt.Errorf("archive artifact to s3://%s/%s: %w", a.bucket, key, err)
	}
	return key, nil
}
