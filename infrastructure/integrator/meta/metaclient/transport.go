package metaclient

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	ProxyRequestPath = "/v1/meta/request"
	ProxyUploadPath  = "/v1/meta/upload"

	// ProxyCredentialsPath devolve as credenciais da organização do bearer, sem o token
	ProxyCredentialsPath = "/v1/credentials"
)

// RequestOptions descreve uma chamada à Graph API independente do transporte
type RequestOptions struct {
	Method      string            `json:"method"`
	Params      map[string]string `json:"params,omitempty"`
	Body        map[string]any    `json:"body,omitempty"`
	FormEncoded bool              `json:"formEncoded,omitempty"`
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

// ProxyRequest é o envelope enviado ao backend em POST /v1/meta/request
type ProxyRequest struct {
	Method      string            `json:"method"`
	Endpoint    string            `json:"endpoint"`
	Params      map[string]string `json:"params,omitempty"`
	Body        map[string]any    `json:"body,omitempty"`
	FormEncoded bool              `json:"formEncoded,omitempty"`
}

// Options devolve as opções de chamada contidas no envelope
func (r ProxyRequest) Options() RequestOptions {
	return RequestOptions{
		Method:      r.Method,
		Params:      r.Params,
		Body:        r.Body,
		FormEncoded: r.FormEncoded,
	}
}

// Transport é a estratégia de envio escolhida uma única vez na construção do client.
// Do e Upload devolvem o corpo cru da resposta já sem envelope de erro.
type Transport interface {
	Kind() TransportKind
	Do(ctx context.Context, endpoint string, opts RequestOptions) ([]byte, error)
	Upload(ctx context.Context, accountID string, image []byte) ([]byte, error)
}
