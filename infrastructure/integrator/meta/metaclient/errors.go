package metaclient

import (
	"errors"
	"fmt"
	"net/http"

	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
)

var (
	// ErrConfiguration indica que falta conta de anúncios, página ou token para a chamada
	ErrConfiguration = errors.New("meta configuration error")
	// ErrTransport indica falha de rede/HTTP antes de existir uma resposta da plataforma
	ErrTransport = errors.New("meta transport error")
)

// APIError é o erro normalizado de qualquer chamada à plataforma, independente do transporte
type APIError struct {
	Message     string
	Code        int
	Subcode     int
	Type        string
	UserTitle   string
	UserMessage string
	FBTraceID   string
	StatusCode  int
	Raw         []byte
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.UserMessage != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.UserMessage)
	}

	if e.Subcode != 0 {
		return fmt.Sprintf("meta api error %d (subcode %d): %s", e.Code, e.Subcode, msg)
	}
	return fmt.Sprintf("meta api error %d: %s", e.Code, msg)
}

func (e *APIError) details() *metadomain.ErrorDetails {
	return &metadomain.ErrorDetails{
		Message:      e.Message,
		Type:         e.Type,
		Code:         e.Code,
		ErrorSubcode: e.Subcode,
	}
}

// IsPermissionDenied indica os códigos de permissão insuficiente (10 e 200)
func (e *APIError) IsPermissionDenied() bool {
	return e.details().IsPermissionDenied()
}

func (e *APIError) IsTokenExpired() bool {
	return e.details().IsTokenExpired()
}

// Envelope reconstrói o corpo {"error":{...}} da Graph API, usado pelo backend de proxy ao responder
func (e *APIError) Envelope() metadomain.ErrorResponse {
	details := e.details()
	details.ErrorUserTitle = e.UserTitle
	details.ErrorUserMsg = e.UserMessage
	details.FBTraceID = e.FBTraceID
	return metadomain.ErrorResponse{Error: details}
}

// AsAPIError extrai um *APIError da cadeia de erros
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// normalizeResponse transforma uma resposta com envelope de erro ou status não-2xx em *APIError
func normalizeResponse(statusCode int, body []byte) error {
	errorResp, parseErr := ParseErrorResponse(body)
	if parseErr == nil && errorResp.Error != nil {
		details := errorResp.Error
		return &APIError{
			Message:     details.Message,
			Code:        details.Code,
			Subcode:     details.ErrorSubcode,
			Type:        details.Type,
			UserTitle:   details.ErrorUserTitle,
			UserMessage: details.ErrorUserMsg,
			FBTraceID:   details.FBTraceID,
			StatusCode:  statusCode,
			Raw:         body,
		}
	}

	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return &APIError{
			Message:    fmt.Sprintf("unexpected status %d: %s", statusCode, truncate(string(body), 512)),
			StatusCode: statusCode,
			Raw:        body,
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
