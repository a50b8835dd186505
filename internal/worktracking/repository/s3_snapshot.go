package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

// S3API is the subset of the S3 client the snapshot store needs.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3SnapshotStore writes one JSON object per owner: {prefix}/{owner_id}.json.
type S3SnapshotStore struct {
	client S3API
	bucket string
	prefix string
}

func NewS3SnapshotStore(client S3API, bucket, prefix string) *S3SnapshotStore {
	return &S3SnapshotStore{client: client, bucket: bucket, prefix: prefix}
}

func (r *S3SnapshotStore) Name() string { return "s3" }

func (r *S3SnapshotStore) Save(ctx context.Context, ownerID string, projects []domain.Project) (*Snapshot, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	s := newSnapshot(ownerID, projects)
	b, err := encodeSnapshot(s)
	if err != nil {
		return nil, err
	}

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(r.objectKey(ownerID)),
		Body:        bytes.NewReader(b),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to put snapshot: %w", err)
	}
	return s, nil
}

func (r *S3SnapshotStore) Load(ctx context.Context, ownerID string) (*Snapshot, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(r.objectKey(ownerID)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	defer out.Body.Close()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decodeSnapshot(b)
}

func (r *S3SnapshotStore) objectKey(ownerID string) string {
	return path.Join(r.prefix, ownerID+".json")
}
