package metaclient

import (
	"context"
	"fmt"
	"net/http"

	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/internal/config"
)

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks

type Client interface {
	Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error
	Upload(ctx context.Context, accountID string, image []byte) (*metadomain.ImageUploadResponse, error)
	Session() *Session
}

type MetaClient struct {
	session   *Session
	transport Transport
}

// NewClient escolhe o transporte a partir da sessão. tokens substitui o token da sessão
// no modo direto (por exemplo o TokenManager do fallback de desenvolvimento).
func NewClient(session *Session, cfg *config.Config, tokens TokenSource) Client {
	var transport Transport

	switch session.Transport {
	case TransportProxy:
		transport = NewProxyTransport(cfg.Proxy.URL, session.BearerToken, &http.Client{Timeout: cfg.Proxy.Timeout})
	default:
		if tokens == nil {
			tokens = StaticToken(session.AccessToken)
		}
		transport = NewDirectTransport(cfg.Meta.URL, tokens, &http.Client{Timeout: cfg.Meta.RequestTimeout})
	}

	return NewClientWithTransport(session, transport)
}

// NewClientWithTransport alinha session.Transport ao transporte efetivamente usado
func NewClientWithTransport(session *Session, transport Transport) *MetaClient {
	session.Transport = transport.Kind()
	return &MetaClient{
		session:   session,
		transport: transport,
	}
}

func (c *MetaClient) Session() *Session {
	return c.session
}

// Request executa a chamada e decodifica o corpo em out (quando não nil)
func (c *MetaClient) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	body, err := c.transport.Do(ctx, endpoint, opts)
	if err != nil {
		return err
	}

	if out == nil || len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response of %s: %w", endpoint, err)
	}

	return nil
}

func (c *MetaClient) Upload(ctx context.Context, accountID string, image []byte) (*metadomain.ImageUploadResponse, error) {
	body, err := c.transport.Upload(ctx, accountID, image)
	if err != nil {
		return nil, err
	}

	var resp metadomain.ImageUploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode image upload response: %w", err)
	}

	return &resp, nil
}
