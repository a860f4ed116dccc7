package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros de publicação
	ErrPublishConfiguration = "PUB_001" // Configuração de publicação ou credenciais ausentes
	ErrImageUpload          = "PUB_002" // Falha no envio de imagem
	ErrAccountInactive      = "PUB_003" // Conta de anúncios não está ativa
	ErrCampaignCreation     = "PUB_004" // Falha na criação da campanha
	ErrAdSetCreation        = "PUB_005" // Falha na criação do conjunto de anúncios
	ErrAdCreation           = "PUB_006" // Falha na criação do criativo ou anúncio
	ErrPropagationTimeout   = "PUB_007" // Campanha não ficou visível a tempo
	ErrPublishRunNotFound   = "PUB_008" // Registro de publicação não encontrado

	// Erros da plataforma
	ErrMetaRequest      = "META_001" // A plataforma recusou a chamada
	ErrMetaNotConnected = "META_002" // Organização sem credenciais conectadas
	ErrMetaTokenExpired = "META_003" // Token da plataforma expirado

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrPublishConfiguration:  http.StatusBadRequest,
	ErrImageUpload:           http.StatusUnprocessableEntity,
	ErrAccountInactive:       http.StatusUnprocessableEntity,
	ErrCampaignCreation:      http.StatusBadGateway,
	ErrAdSetCreation:         http.StatusBadGateway,
	ErrAdCreation:            http.StatusBadGateway,
	ErrPropagationTimeout:    http.StatusGatewayTimeout,
	ErrPublishRunNotFound:    http.StatusNotFound,
	ErrMetaRequest:           http.StatusBadGateway,
	ErrMetaNotConnected:      http.StatusPreconditionFailed,
	ErrMetaTokenExpired:      http.StatusUnauthorized,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP do código, 500 quando desconhecido
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// WriteErrorWithStatus escreve o erro padronizado com um status diferente do mapeado para o código
func WriteErrorWithStatus(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIError{Code: code, Message: message})
}
