package metadomain

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error *ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message        string      `json:"message"`
	Type           string      `json:"type"`
	Code           int         `json:"code"`
	ErrorSubcode   int         `json:"error_subcode,omitempty"`
	ErrorUserTitle string      `json:"error_user_title,omitempty"`
	ErrorUserMsg   string      `json:"error_user_msg,omitempty"`
	FBTraceID      string      `json:"fbtrace_id"`
	ErrorData      interface{} `json:"error_data,omitempty"`
}

const (
	CodeTokenExpired     = 190
	CodePermission       = 10
	CodePermissionDenied = 200
)

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorDetails) IsTokenExpired() bool {
	if e == nil {
		return false
	}
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Code == CodeTokenExpired ||
		(e.Type == "OAuthException" && (e.ErrorSubcode == 460 || e.ErrorSubcode == 463 || e.ErrorSubcode == 467))
}

// IsPermissionDenied verifica se o erro é de permissão insuficiente (códigos 10 e 200)
func (e *ErrorDetails) IsPermissionDenied() bool {
	if e == nil {
		return false
	}
	return e.Code == CodePermission || e.Code == CodePermissionDenied
}
