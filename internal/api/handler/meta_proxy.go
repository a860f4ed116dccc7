package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
)

const (
	maxProxyBody  = 1 << 20
	maxUploadBody = 32 << 20
)

var proxyMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete}

var (
	errInvalidEndpoint = errors.New("endpoint must be a relative graph path")
	errInvalidMethod   = errors.New("method must be GET, POST or DELETE")
)

func validateProxyRequest(req *metaclient.ProxyRequest) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	req.Method = strings.ToUpper(req.Method)
	if !slices.Contains(proxyMethods, req.Method) {
		return errInvalidMethod
	}

	req.Endpoint = strings.TrimPrefix(strings.TrimSpace(req.Endpoint), "/")
	if req.Endpoint == "" || strings.Contains(req.Endpoint, "://") || strings.Contains(req.Endpoint, "..") {
		return errInvalidEndpoint
	}

	return nil
}

// writeGraphError responde no mesmo envelope da Graph API para o ProxyTransport do cliente normalizar igual ao direto
func writeGraphError(w http.ResponseWriter, err error) {
	if apiErr, ok := metaclient.AsAPIError(err); ok {
		status := apiErr.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, apiErr.Envelope())
		return
	}

	status := http.StatusBadGateway
	if errors.Is(err, metaclient.ErrConfiguration) {
		status = http.StatusPreconditionFailed
	}

	writeJSON(w, status, metadomain.ErrorResponse{Error: &metadomain.ErrorDetails{
		Message: err.Error(),
		Type:    "ProxyError",
	}})
}

// ProxyMetaRequest executa na plataforma a chamada descrita pelo envelope, com o token da organização
func ProxyMetaRequest(clients ClientFactory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req metaclient.ProxyRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxProxyBody)).Decode(&req); err != nil {
			writeGraphError(w, &metaclient.APIError{Message: "invalid proxy request: " + err.Error(), Type: "ProxyError", StatusCode: http.StatusBadRequest})
			return
		}
		if err := validateProxyRequest(&req); err != nil {
			writeGraphError(w, &metaclient.APIError{Message: err.Error(), Type: "ProxyError", StatusCode: http.StatusBadRequest})
			return
		}

		client, ok := clientFor(w, r, clients)
		if !ok {
			return
		}

		if accountID, ok := endpointAccount(req.Endpoint); ok && !accountAllowed(client.Session(), accountID) {
			logger.WithFields(log.Fields{
				"account_id": accountID,
				"endpoint":   req.Endpoint,
			}).Warn("proxy: account not connected to organization")
			writeAccountForbidden(w, accountID)
			return
		}

		var raw jsoniter.RawMessage
		if err := client.Request(r.Context(), req.Endpoint, req.Options(), &raw); err != nil {
			logger.WithFields(log.Fields{
				"method":   req.Method,
				"endpoint": req.Endpoint,
				"error":    err.Error(),
			}).Warn("proxy: meta request failed")
			writeGraphError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if len(raw) == 0 {
			raw = jsoniter.RawMessage("{}")
		}
		if _, err := w.Write(raw); err != nil {
			logger.WithError(err).Warn("proxy: error writing response")
		}
	})
}

// ProxyMetaUpload recebe multipart account_id + image e envia para adimages da conta
func ProxyMetaUpload(clients ClientFactory) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(maxUploadBody); err != nil {
			writeGraphError(w, &metaclient.APIError{Message: "invalid upload: " + err.Error(), Type: "ProxyError", StatusCode: http.StatusBadRequest})
			return
		}

		accountID := strings.TrimPrefix(r.FormValue("account_id"), "act_")
		if accountID == "" {
			writeGraphError(w, &metaclient.APIError{Message: "account_id is required", Type: "ProxyError", StatusCode: http.StatusBadRequest})
			return
		}

		file, _, err := r.FormFile("image")
		if err != nil {
			writeGraphError(w, &metaclient.APIError{Message: "image part is required", Type: "ProxyError", StatusCode: http.StatusBadRequest})
			return
		}
		defer file.Close()

		image, err := io.ReadAll(file)
		if err != nil {
			writeGraphError(w, &metaclient.APIError{Message: "could not read image", Type: "ProxyError", StatusCode: http.StatusBadRequest})
			return
		}

		client, ok := clientFor(w, r, clients)
		if !ok {
			return
		}

		if !accountAllowed(client.Session(), accountID) {
			writeAccountForbidden(w, accountID)
			return
		}

		resp, err := client.Upload(r.Context(), accountID, image)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Warn("proxy: image upload failed")
			writeGraphError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func writeAccountForbidden(w http.ResponseWriter, accountID string) {
	writeGraphError(w, &metaclient.APIError{
		Message:    fmt.Sprintf("ad account %s is not connected to this organization", accountID),
		Type:       "ProxyError",
		StatusCode: http.StatusForbidden,
	})
}

// endpointAccount extrai o id da conta quando o endpoint começa pelo nó act_{id}
func endpointAccount(endpoint string) (string, bool) {
	node, _, _ := strings.Cut(endpoint, "/")
	node, _, _ = strings.Cut(node, "?")
	if !strings.HasPrefix(node, "act_") {
		return "", false
	}
	return strings.TrimPrefix(node, "act_"), true
}

func accountAllowed(session *metaclient.Session, accountID string) bool {
	if strings.TrimPrefix(session.Credentials.AdAccountID, "act_") == accountID {
		return true
	}
	for _, available := range session.Credentials.AvailableAccounts {
		if strings.TrimPrefix(available, "act_") == accountID {
			return true
		}
	}
	return false
}
