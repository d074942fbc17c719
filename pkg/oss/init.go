package oss

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"xTube.com/config"
)

// InitMinio 按配置创建 MinIO 客户端并确保 bucket 存在
func InitMinio(ctx context.Context) (*MinioStore, error) {
	cfg := config.ConfigInfo.Minio
	hlog.Infof("Initializing MinIO client with endpoint: %s, bucket: %s", cfg.Endpoint, cfg.Bucket)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	store := NewMinioStore(client, cfg.Bucket, cfg.PublicURL)
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	hlog.Info("Connect Minio Success")
	return store, nil
}
