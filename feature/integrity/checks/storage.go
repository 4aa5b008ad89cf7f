package checks

import (
	"context"
	"fmt"
	"path"
	"time"

	"equipment-validator/core/storage"

	"github.com/minio/minio-go/v7"
)

// StorageReport describes the rule snapshot object.
type StorageReport struct {
	Bucket       string    `json:"bucket"`
	Object       string    `json:"object"`
	BucketExists bool      `json:"bucket_exists"`
	ObjectExists bool      `json:"object_exists"`
	Size         int64     `json:"size,omitempty"`
	LastModified time.Time `json:"last_modified,omitempty"`
	Status       string    `json:"status"`

	// Siblings lists the other objects under the snapshot's prefix.
	Siblings []string `json:"siblings"`
}

// CheckSnapshot verifies that the bucket and the snapshot object exist.
// A missing bucket or object is reported, not returned as an error.
func CheckSnapshot(ctx context.Context, client storage.Client, bucket, object string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Object: object, Siblings: []string{}, Status: "error"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		return report, nil
	}

	info, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{})
	switch {
	case err == nil:
		report.ObjectExists = true
		report.Size = info.Size
		report.LastModified = info.LastModified
		report.Status = "ok"
	case storage.IsNotFound(err):
	default:
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}

	prefix := path.Dir(object)
	if prefix == "." {
		prefix = ""
	} else {
		prefix += "/"
	}
	for obj := range client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", prefix, obj.Err)
		}
		if obj.Key != object {
			report.Siblings = append(report.Siblings, obj.Key)
		}
	}

	return report, nil
}
