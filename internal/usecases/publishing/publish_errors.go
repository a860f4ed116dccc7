package publishing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

// Erros específicos do fluxo de publicação
var (
	ErrConfiguration      = metaclient.ErrConfiguration
	ErrTransport          = metaclient.ErrTransport
	ErrInvalidConfig      = errors.New("invalid publish config")
	ErrUpload             = errors.New("image upload failed")
	ErrAccountInactive    = errors.New("ad account is not active")
	ErrCampaignCreation   = errors.New("campaign creation failed")
	ErrAdSetCreation      = errors.New("ad set creation failed")
	ErrCreativeCreation   = errors.New("creative creation failed")
	ErrAdCreation         = errors.New("ad creation failed")
	ErrPropagationTimeout = errors.New("campaign not visible after creation")
	ErrPageAccess         = errors.New("page access could not be confirmed")
)

// Step identifica a etapa do pipeline em que o erro aconteceu
type Step string

const (
	StepValidateConfig Step = "validate_config"
	StepValidatePage   Step = "validate_page"
	StepUploadImages   Step = "upload_images"
	StepAccountHealth  Step = "account_health"
	StepCampaign       Step = "campaign"
	StepPropagation    Step = "propagation"
	StepAdSet          Step = "adset"
	StepAds            Step = "ads"
)

// PublishError é um erro com contexto adicional da publicação
type PublishError struct {
	Err     error  // Erro base (sentinela)
	Code    string // Código de erro para API
	Step    Step   // Etapa do pipeline
	AdIndex int    // Índice do anúncio envolvido, -1 quando não se aplica
	Details string // Detalhes adicionais
	Cause   error  // Erro original da plataforma ou transporte
}

func (e *PublishError) Error() string {
	msg := e.Err.Error()
	if e.AdIndex >= 0 {
		msg = fmt.Sprintf("%s (ad %d)", msg, e.AdIndex)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Cause.Error())
	}
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	return msg
}

// Unwrap permite errors.Is tanto no sentinela quanto na causa
func (e *PublishError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewPublishError cria um PublishError sem índice de anúncio
func NewPublishError(err error, code string, step Step, cause error) *PublishError {
	return &PublishError{
		Err:     err,
		Code:    code,
		Step:    step,
		AdIndex: -1,
		Cause:   cause,
	}
}

// NewAdPublishError cria um PublishError ligado a um anúncio
func NewAdPublishError(err error, code string, step Step, adIndex int, cause error) *PublishError {
	return &PublishError{
		Err:     err,
		Code:    code,
		Step:    step,
		AdIndex: adIndex,
		Cause:   cause,
	}
}

// codeFor devolve o código de API de um erro qualquer do fluxo
func codeFor(err error) string {
	var publishErr *PublishError
	if errors.As(err, &publishErr) && publishErr.Code != "" {
		return publishErr.Code
	}

	if apiErr, ok := metaclient.AsAPIError(err); ok && apiErr.IsTokenExpired() {
		return apiErrors.ErrMetaTokenExpired
	}

	switch {
	case errors.Is(err, ErrConfiguration):
		return apiErrors.ErrPublishConfiguration
	case errors.Is(err, ErrTransport):
		return apiErrors.ErrCommunication
	}

	return apiErrors.ErrInternalServer
}
