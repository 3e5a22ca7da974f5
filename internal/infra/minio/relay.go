package minio

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"clipstream/internal/config"
	"clipstream/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/xid"
	"go.uber.org/zap"
)

// Kind 上传资源类型
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// UploadResult 上传结果：公开访问地址、对象名（删除时使用）、视频时长
type UploadResult struct {
	URL        string
	ObjectName string
	Duration   float64 // 秒，仅 KindVideo 有值
}

// Relay 媒体中转：把本地临时文件上传到对象存储并返回稳定 URL
type Relay struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewRelay 创建媒体中转客户端并确保 Bucket 存在且公开可读
func NewRelay(cfg *config.MinIOConfig) (*Relay, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MediaBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.MediaBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MediaBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.MediaBucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.MediaBucket))
	}

	// 媒体 Bucket 需要公开读，前端直接访问头像、封面和视频
	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, cfg.MediaBucket)
	if err := client.SetBucketPolicy(ctx, cfg.MediaBucket, policy); err != nil {
		return nil, fmt.Errorf("failed to set public policy for %s: %w", cfg.MediaBucket, err)
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.MediaBucket),
	)

	return &Relay{
		client:   client,
		bucket:   cfg.MediaBucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
	}, nil
}

// Upload 上传本地文件，KindVideo 会先用 ffprobe 探测时长
func (r *Relay) Upload(ctx context.Context, localPath string, kind Kind) (*UploadResult, error) {
	ext := filepath.Ext(localPath)
	objectName := fmt.Sprintf("%s/%s%s", kind, xid.New().String(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var duration float64
	if kind == KindVideo {
		d, err := probeDuration(localPath)
		if err != nil {
			logger.Warn("Probe video duration failed", zap.String("path", localPath), zap.Error(err))
		} else {
			duration = d
		}
	}

	_, err := r.client.FPutObject(ctx, r.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to minio: %w", err)
	}

	return &UploadResult{
		URL:        r.publicURL(objectName),
		ObjectName: objectName,
		Duration:   duration,
	}, nil
}

// Delete 删除远端对象（替换或移除媒体时调用）
func (r *Relay) Delete(ctx context.Context, objectName string) error {
	if objectName == "" {
		return nil
	}
	if err := r.client.RemoveObject(ctx, r.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object %s: %w", objectName, err)
	}
	return nil
}

func (r *Relay) publicURL(objectName string) string {
	scheme := "http"
	if r.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, r.endpoint, r.bucket, objectName)
}

// probeDuration 用 ffprobe 读取视频时长
func probeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return duration, nil
}
