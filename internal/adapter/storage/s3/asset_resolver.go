// Package s3 turns listing image asset references into URLs served from
// MinIO / S3 compatible object storage.
package s3

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/goodmenmotors/catalog-service/internal/config"
	"github.com/goodmenmotors/catalog-service/internal/platform/logger"
)

// assetRefPattern matches content store image references such as
// image-9f2c1e-1600x1067-jpg.
var assetRefPattern = regexp.MustCompile(`^image-([A-Za-z0-9]+)-(\d+x\d+)-([a-z0-9]+)$`)

// ObjectKey maps an asset reference to its object key. Plain keys are
// accepted as long as they stay inside the bucket.
func ObjectKey(ref string) (string, bool) {
	if m := assetRefPattern.FindStringSubmatch(ref); m != nil {
		return fmt.Sprintf("images/%s-%s.%s", m[1], m[2], m[3]), true
	}
	if ref == "" || strings.HasPrefix(ref, "/") || strings.Contains(ref, "..") || strings.ContainsAny(ref, "?#\\") {
		return "", false
	}
	return ref, true
}

// AssetResolver builds image URLs. With an object storage endpoint it hands
// out presigned GET URLs; otherwise it joins the key to a public base URL.
type AssetResolver struct {
	client        *minio.Client
	bucket        string
	presignTTL    time.Duration
	publicBaseURL string
	logger        *logger.Logger
}

func NewAssetResolver(cfg *config.StorageConfig, log *logger.Logger) (*AssetResolver, error) {
	r := &AssetResolver{
		bucket:        cfg.Bucket,
		presignTTL:    cfg.PresignTTL,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        log.Named("AssetResolver"),
	}
	if cfg.Endpoint == "" {
		r.logger.Info("Object storage not configured, serving images from public base URL",
			zap.String("public_base_url", r.publicBaseURL))
		return r, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		r.logger.Error("Failed to create MinIO client", zap.String("endpoint", cfg.Endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}
	r.client = client
	r.logger.Info("Initialized MinIO asset resolver",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("use_ssl", cfg.UseSSL))
	return r, nil
}

// CheckBucket verifies that the image bucket exists.
func (r *AssetResolver) CheckBucket(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	exists, err := r.client.BucketExists(ctx, r.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", r.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", r.bucket)
	}
	return nil
}

// URL resolves ref. It returns "" for references that cannot be mapped.
func (r *AssetResolver) URL(ctx context.Context, ref string) string {
	if strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://") {
		return ref
	}
	key, ok := ObjectKey(ref)
	if !ok {
		r.logger.Debug("Unresolvable asset reference", zap.String("ref", ref))
		return ""
	}
	if r.client != nil {
		u, err := r.client.PresignedGetObject(ctx, r.bucket, key, r.presignTTL, url.Values{})
		if err == nil {
			return u.String()
		}
		r.logger.Warn("Failed to presign image URL, using public URL", zap.String("key", key), zap.Error(err))
	}
	return r.publicBaseURL + "/" + key
}
