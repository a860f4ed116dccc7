package metaclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// TokenSource fornece o token de acesso atual da plataforma
type TokenSource interface {
	Token() string
}

// StaticToken é um TokenSource fixo
type StaticToken string

func (t StaticToken) Token() string {
	return string(t)
}

// DirectTransport fala com a Graph API usando um token de acesso local
type DirectTransport struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func NewDirectTransport(baseURL string, tokens TokenSource, httpClient *http.Client) *DirectTransport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DirectTransport{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		tokens:     tokens,
		httpClient: httpClient,
	}
}

func (t *DirectTransport) Kind() TransportKind {
	return TransportDirect
}

func (t *DirectTransport) token() (string, error) {
	if t.tokens == nil || t.tokens.Token() == "" {
		return "", fmt.Errorf("%w: access token not configured", ErrConfiguration)
	}
	return t.tokens.Token(), nil
}

func (t *DirectTransport) Do(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error) {
	token, err := t.token()
	if err != nil {
		return nil, err
	}

	method := opts.method()
	query := url.Values{}
	for k, v := range opts.Params {
		query.Set(k, v)
	}

	var (
		body        io.Reader
		contentType string
	)

	switch method {
	case http.MethodGet, http.MethodDelete:
		query.Set("access_token", token)
	default:
		if opts.FormEncoded {
			form, err := encodeForm(opts.Body)
			if err != nil {
				return nil, err
			}
			form.Set("access_token", token)
			body = strings.NewReader(form.Encode())
			contentType = "application/x-www-form-urlencoded"
		} else {
			payload := make(map[string]any, len(opts.Body)+1)
			for k, v := range opts.Body {
				payload[k] = v
			}
			payload["access_token"] = token

			raw, err := json.Marshal(payload)
			if err != nil {
				return nil, fmt.Errorf("encode request body: %w", err)
			}
			body = bytes.NewReader(raw)
			contentType = "application/json"
		}
	}

	requestURL := t.baseURL + "/" + strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
	}).Debug("meta: direct request")

	return t.send(req, endpoint)
}

// Upload envia a imagem para act_{id}/adimages como multipart com o campo bytes em base64
func (t *DirectTransport) Upload(ctx context.Context, accountID string, image []byte) ([]byte, error) {
	token, err := t.token()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("bytes", base64.StdEncoding.EncodeToString(image)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.WriteField("access_token", token); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	endpoint := AccountPath(accountID) + "/adimages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/"+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"size":       len(image),
	}).Debug("meta: direct image upload")

	return t.send(req, endpoint)
}

func (t *DirectTransport) send(req *http.Request, endpoint string) ([]byte, error) {
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
		if apiErr, ok := AsAPIError(err); ok && apiErr.IsTokenExpired() {
			logrus.WithFields(logrus.Fields{
				"code":     apiErr.Code,
				"subcode":  apiErr.Subcode,
				"endpoint": endpoint,
			}).Warn("meta: access token expired or invalidated, reauthorization required")
		}
		return nil, err
	}

	return body, nil
}

// encodeForm converte o corpo em form: strings e números vão como texto,
// valores aninhados são serializados em JSON
func encodeForm(body map[string]any) (url.Values, error) {
	form := url.Values{}
	for key, value := range body {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			form.Set(key, v)
		case bool:
			form.Set(key, strconv.FormatBool(v))
		case int:
			form.Set(key, strconv.Itoa(v))
		case int64:
			form.Set(key, strconv.FormatInt(v, 10))
		case float64:
			form.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("encode form field %s: %w", key, err)
			}
			form.Set(key, string(raw))
		}
	}
	return form, nil
}
