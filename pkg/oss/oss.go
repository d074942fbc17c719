package oss

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"xTube.com/cmd/model"
)

// BlobStore 媒体文件存储
type BlobStore interface {
	// Store 上传本地文件到 folder，返回可访问地址与存储 ID
	Store(ctx context.Context, path, folder string) (model.Asset, error)
	// Delete 按存储 ID 删除
	Delete(ctx context.Context, storageID string) error
}

// MinioStore 基于 MinIO 的实现，存储 ID 即 object name
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ BlobStore = (*MinioStore)(nil)

func NewMinioStore(client *minio.Client, bucket, publicURL string) *MinioStore {
	return &MinioStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *MinioStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket error: %w", err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: "us-east-1"}); err != nil {
		return fmt.Errorf("create bucket error: %w", err)
	}
	return nil
}

func (s *MinioStore) Store(ctx context.Context, path, folder string) (model.Asset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	objectName := folder + "/" + uuid.NewString() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := s.client.FPutObject(ctx, s.bucket, objectName, path, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		hlog.CtxErrorf(ctx, "Failed to upload %s: %v", objectName, err)
		return model.Asset{}, fmt.Errorf("upload %s: %w", objectName, err)
	}
	return model.Asset{URL: s.objectURL(objectName), StorageID: objectName}, nil
}

func (s *MinioStore) Delete(ctx context.Context, storageID string) error {
	if storageID == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, storageID, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", storageID, err)
	}
	return nil
}

func (s *MinioStore) objectURL(objectName string) string {
	base := s.publicURL
	if base == "" {
		scheme := "http"
		if s.client.EndpointURL().Scheme == "https" {
			scheme = "https"
		}
		base = scheme + "://" + s.client.EndpointURL().Host
	}
	return fmt.Sprintf("%s/%s/%s", base, s.bucket, objectName)
}

// DeleteQuietly 尽力删除，失败只记录日志；用于回滚与级联清理
func DeleteQuietly(ctx context.Context, store BlobStore, asset model.Asset, reason string) {
	if store == nil || asset.Empty() {
		return
	}
	if err := store.Delete(ctx, asset.StorageID); err != nil {
		hlog.CtxErrorf(ctx, "delete blob %s (%s) failed: %v", asset.StorageID, reason, err)
	}
}
