package imagesource

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API é o subconjunto do client do S3 usado aqui
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Reader lê imagens de buckets S3 (fontes s3://bucket/key)
type S3Reader struct {
	client   S3API
	maxBytes int64
}

// NewS3Reader cria o reader. maxBytes <= 0 desliga o limite de leitura.
func NewS3Reader(client S3API, maxBytes int64) *S3Reader {
	return &S3Reader{client: client, maxBytes: maxBytes}
}

// NewS3ReaderFromEnv usa a cadeia padrão de credenciais da AWS
func NewS3ReaderFromEnv(ctx context.Context, region string, maxBytes int64) (*S3Reader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for image sources: %w", err)
	}

	return NewS3Reader(s3.NewFromConfig(cfg), maxBytes), nil
}

func (r *S3Reader) Read(ctx context.Context, bucket, key string) ([]byte, error) {
	resp, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("S3 GetObject %s/%s: %w", bucket, key, err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if r.maxBytes > 0 {
		body = io.LimitReader(resp.Body, r.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading S3 object body: %w", err)
	}
	if r.maxBytes > 0 && int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("%w: s3://%s/%s is larger than %d bytes", ErrImageTooLarge, bucket, key, r.maxBytes)
	}

	return data, nil
}
