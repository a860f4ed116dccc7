package imagesource

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptySource   = errors.New("image source is empty")
	ErrImageTooLarge = errors.New("image exceeds the maximum size")
	ErrInvalidBase64 = errors.New("image is not valid base64")
	ErrNoS3Reader    = errors.New("s3 sources are not configured")
)

//go:generate mockgen -source=loader.go -destination=mocks/loader.go -package=mocks

// Source resolve uma referência de imagem (URL, s3:// ou base64) para os bytes da imagem
type Source interface {
	Load(ctx context.Context, source string) ([]byte, error)
}

// ObjectReader lê objetos de um storage (implementado pelo S3Reader)
type ObjectReader interface {
	Read(ctx context.Context, bucket, key string) ([]byte, error)
}

type Loader struct {
	httpClient *http.Client
	objects    ObjectReader
	maxBytes   int64
}

// NewLoader cria o loader. objects pode ser nil quando não há S3 configurado.
func NewLoader(httpClient *http.Client, objects ObjectReader, maxBytes int64) *Loader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Loader{
		httpClient: httpClient,
		objects:    objects,
		maxBytes:   maxBytes,
	}
}

func (l *Loader) Load(ctx context.Context, source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}

	var (
		data []byte
		err  error
	)

	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		data, err = l.fetch(ctx, source)
	case strings.HasPrefix(source, "s3://"):
		data, err = l.readObject(ctx, source)
	default:
		data, err = DecodeBase64(source)
	}
	if err != nil {
		return nil, err
	}

	if l.maxBytes > 0 && int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrImageTooLarge, len(data), l.maxBytes)
	}

	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image %s: status %s", url, resp.Status)
	}

	var body io.Reader = resp.Body
	if l.maxBytes > 0 {
		body = io.LimitReader(resp.Body, l.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", url, err)
	}

	logrus.WithFields(logrus.Fields{
		"url":  url,
		"size": len(data),
	}).Debug("imagesource: image fetched")

	return data, nil
}

func (l *Loader) readObject(ctx context.Context, source string) ([]byte, error) {
	if l.objects == nil {
		return nil, ErrNoS3Reader
	}

	bucket, key, err := ParseS3URI(source)
	if err != nil {
		return nil, err
	}

	return l.objects.Read(ctx, bucket, key)
}

// DecodeBase64 decodifica o conteúdo inline, removendo um prefixo data:*;base64, se houver
func DecodeBase64(source string) ([]byte, error) {
	if strings.HasPrefix(source, "data:") {
		idx := strings.Index(source, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: malformed data uri", ErrInvalidBase64)
		}
		source = source[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(source)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
	}

	return data, nil
}

// ParseS3URI separa s3://bucket/key em bucket e key
func ParseS3URI(uri string) (string, string, error) {
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 uri %q, expected s3://bucket/key", uri)
	}
	return bucket, key, nil
}
