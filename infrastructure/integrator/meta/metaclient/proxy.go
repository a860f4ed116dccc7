package metaclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

// ProxyTransport encaminha as chamadas ao backend que guarda o token real da organização
type ProxyTransport struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

func NewProxyTransport(baseURL, bearerToken string, httpClient *http.Client) *ProxyTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ProxyTransport{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		bearerToken: bearerToken,
		httpClient:  httpClient,
	}
}

func (t *ProxyTransport) Kind() TransportKind {
	return TransportProxy
}

func (t *ProxyTransport) Do(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error) {
	envelope := ProxyRequest{
		Method:      opts.method(),
		Endpoint:    strings.TrimPrefix(endpoint, "/"),
		Params:      opts.Params,
		Body:        opts.Body,
		FormEncoded: opts.FormEncoded,
	}

	raw, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode proxy request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+ProxyRequestPath, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	logrus.WithFields(logrus.Fields{
		"method":   envelope.Method,
		"endpoint": envelope.Endpoint,
	}).Debug("meta: proxy request")

	return t.send(req, endpoint)
}

// Upload envia a imagem ao backend como multipart com account_id e a parte image
func (t *ProxyTransport) Upload(ctx context.Context, accountID string, image []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("account_id", accountID); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	part, err := writer.CreateFormFile("image", "image")
	if err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+ProxyUploadPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"size":       len(image),
	}).Debug("meta: proxy image upload")

	return t.send(req, ProxyUploadPath)
}

// Credentials busca no backend as credenciais da organização dona do bearer
func (t *ProxyTransport) Credentials(ctx context.Context) (*domain.Credentials, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+ProxyCredentialsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}

	body, err := t.send(req, ProxyCredentialsPath)
	if err != nil {
		return nil, err
	}

	var creds domain.Credentials
	if err := json.Unmarshal(body, &creds); err != nil {
		return nil, fmt.Errorf("decode organization credentials: %w", err)
	}

	return &creds, nil
}

func (t *ProxyTransport) send(req *http.Request, endpoint string) ([]byte, error) {
	if t.bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.bearerToken)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if err := normalizeResponse(resp.StatusCode, body); err != nil {
		return nil, err
	}

	return body, nil
}
