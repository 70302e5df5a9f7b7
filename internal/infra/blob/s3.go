package blob

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/bytedance/sonic"
	"github.com/tabletop-manager/api/internal/config"
)

type S3Deps struct {
	Client    *s3.Client
	Uploader  *manager.Uploader
	Presigner *s3.PresignClient
	Bucket    string
	SSE       *s3types.ServerSideEncryption
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}

	acfg, err := awsCfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(acfg, func(o *s3.Options) {
		if ep := normalizeEndpoint(cfg.S3.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	var sse *s3types.ServerSideEncryption
	if cfg.S3.SSE != "" {
		v := s3types.ServerSideEncryption(cfg.S3.SSE)
		sse = &v
	}

	return &S3Deps{
		Client:    client,
		Uploader:  manager.NewUploader(client),
		Presigner: s3.NewPresignClient(client),
		Bucket:    cfg.S3.Bucket,
		SSE:       sse,
	}, nil
}

// normalizeEndpoint accepts bare hosts ("minio:9000") as well as URLs.
func normalizeEndpoint(ep string) string {
	ep = strings.TrimSpace(ep)
	if ep == "" {
		return ""
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	u, err := url.Parse(ep)
	if err != nil {
		return ""
	}
	return u.String()
}

// PresignGet returns a time-limited download URL for key.
func (s *S3Deps) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("key is empty")
	}
	ps, err := s.Presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.Bucket,
		Key:    &key,
	}, func(po *s3.PresignOptions) {
		po.Expires = expire
	})
	if err != nil {
		return "", err
	}
	return ps.URL, nil
}

type UploadedMeta struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	ETag   string `json:"etag"`
	SHA256 string `json:"sha256"`
	MIME   string `json:"mime"`
	SizeB  int64  `json:"size_b"`
}

// ObjectKey is content addressed: <prefix>/<yyyy/mm/dd>/<sha256>.json
func ObjectKey(prefix string, at time.Time, body []byte) (key, sumHex string) {
	sum := sha256.Sum256(body)
	sumHex = hex.EncodeToString(sum[:])
	key = fmt.Sprintf("%s/%s/%s.json", strings.TrimSuffix(prefix, "/"), at.UTC().Format("2006/01/02"), sumHex)
	return key, sumHex
}

// UploadJSON serializes data and stores it under a content-addressed key.
func (s *S3Deps) UploadJSON(ctx context.Context, keyPrefix string, data interface{}) (*UploadedMeta, error) {
	body, err := sonic.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal json: %w", err)
	}
	key, sumHex := ObjectKey(keyPrefix, time.Now(), body)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata:    map[string]string{"sha256": sumHex},
	}
	if s.SSE != nil {
		input.ServerSideEncryption = *s.SSE
	}

	out, err := s.Uploader.Upload(ctx, input)
	if err != nil {
		return nil, err
	}

	meta := &UploadedMeta{
		Bucket: s.Bucket,
		Key:    key,
		SHA256: sumHex,
		MIME:   "application/json",
		SizeB:  int64(len(body)),
	}
	if out.ETag != nil {
		meta.ETag = *out.ETag
	}
	return meta, nil
}
