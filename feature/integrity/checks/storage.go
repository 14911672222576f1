package checks

import (
	"context"
	"fmt"
	"strings"

	"lunar-assistant/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// StorageReport is the result of the storage check.
type StorageReport struct {
	Bucket       string `json:"bucket"`
	BucketExists bool   `json:"bucket_exists"`
	Prefix       string `json:"prefix"`
	// Configs counts the community configurations under the prefix.
	Configs int    `json:"configs"`
	Status  string `json:"status"` // "ok", "missing", "error"
	Error   string `json:"error,omitempty"`
}

// CheckStorage verifies the bucket exists and the rule configuration prefix
// can be listed.
func CheckStorage(ctx context.Context, client storage.Client, bucket, prefix string) (*StorageReport, error) {
	report := &StorageReport{Bucket: bucket, Prefix: prefix, Status: "ok"}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	report.BucketExists = exists
	if !exists {
		report.Status = "missing"
		return report, nil
	}

	folder := strings.TrimSuffix(prefix, "/") + "/"
	opts := minio.ListObjectsOptions{Prefix: folder, Recursive: true}
	for obj := range client.ListObjects(ctx, bucket, opts) {
		if obj.Err != nil {
			report.Status = "error"
			report.Error = obj.Err.Error()
			return report, nil
		}
		if strings.HasSuffix(obj.Key, ".json") {
			report.Configs++
		}
	}
	return report, nil
}

// FixStorage creates the bucket when it is missing.
func FixStorage(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Created missing bucket", zap.String("bucket", bucket))
	return nil
}
