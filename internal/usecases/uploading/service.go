package uploading

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/imagesource"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
)

var ErrMissingHash = errors.New("image upload response has no hash")

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// ImageUploader transforma uma referência de imagem no hash usado pelos criativos
type ImageUploader interface {
	Upload(ctx context.Context, source string) (string, error)
}

type Service struct {
	client     metaclient.Client
	source     imagesource.Source
	normalizer *imagesource.Normalizer
}

// NewService cria o uploader. normalizer pode ser nil para enviar os bytes como vieram.
func NewService(client metaclient.Client, source imagesource.Source, normalizer *imagesource.Normalizer) ImageUploader {
	return &Service{
		client:     client,
		source:     source,
		normalizer: normalizer,
	}
}

func (s *Service) Upload(ctx context.Context, source string) (string, error) {
	accountID, err := s.client.Session().RequireAccount()
	if err != nil {
		return "", err
	}

	data, err := s.source.Load(ctx, source)
	if err != nil {
		return "", fmt.Errorf("load image: %w", err)
	}

	if s.normalizer != nil {
		data, err = s.normalizer.Normalize(data)
		if err != nil {
			return "", fmt.Errorf("normalize image: %w", err)
		}
	}

	resp, err := s.client.Upload(ctx, accountID, data)
	if err != nil {
		return "", err
	}

	hash, err := ExtractHash(resp)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"hash":       hash,
		"size":       len(data),
	}).Info("uploading: image uploaded")

	return hash, nil
}

// ExtractHash devolve o hash da única entrada de {images: {<chave>: {hash}}}
func ExtractHash(resp *metadomain.ImageUploadResponse) (string, error) {
	if resp == nil || len(resp.Images) == 0 {
		return "", ErrMissingHash
	}

	keys := make([]string, 0, len(resp.Images))
	for k := range resp.Images {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hash := resp.Images[keys[0]].Hash
	if hash == "" {
		return "", ErrMissingHash
	}

	return hash, nil
}
