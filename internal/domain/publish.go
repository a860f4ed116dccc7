package domain

import (
	"errors"
	"fmt"
	"strings"
)

type PublishMode string

const (
	PublishModeNewCampaign   PublishMode = "new_campaign"
	PublishModeNewAdSet      PublishMode = "new_adset"
	PublishModeExistingAdSet PublishMode = "existing_adset"
)

type BudgetMode string

const (
	BudgetModeCBO BudgetMode = "CBO"
	BudgetModeABO BudgetMode = "ABO"
)

// Objetivos de campanha da plataforma (ODAX)
const (
	ObjectiveSales      = "OUTCOME_SALES"
	ObjectiveTraffic    = "OUTCOME_TRAFFIC"
	ObjectiveLeads      = "OUTCOME_LEADS"
	ObjectiveAwareness  = "OUTCOME_AWARENESS"
	ObjectiveEngagement = "OUTCOME_ENGAGEMENT"
)

// Optimization é o objetivo de otimização solicitado para o conjunto de anúncios
type Optimization string

const (
	OptimizationConversions Optimization = "conversions"
	OptimizationClicks      Optimization = "clicks"
	OptimizationReach       Optimization = "reach"
	OptimizationImpressions Optimization = "impressions"
)

const DefaultPixelEventType = "PURCHASE"

// AdInput é um anúncio submetido: uma imagem e seus textos
type AdInput struct {
	// Image é uma URL http(s), um caminho s3://bucket/key ou o conteúdo em base64 (com ou sem prefixo data URI)
	Image    string `json:"image" yaml:"image"`
	Headline string `json:"headline" yaml:"headline"`
	Body     string `json:"body" yaml:"body"`
	CTA      string `json:"cta" yaml:"cta"`
	LinkURL  string `json:"link_url,omitempty" yaml:"link_url,omitempty"`
}

type PublishSettings struct {
	CampaignName   string          `json:"campaign_name" yaml:"campaign_name"`
	AdSetName      string          `json:"adset_name" yaml:"adset_name"`
	AdNamePrefix   string          `json:"ad_name_prefix" yaml:"ad_name_prefix"`
	Objective      string          `json:"campaign_objective" yaml:"campaign_objective"`
	BudgetMode     BudgetMode      `json:"budget_mode" yaml:"budget_mode"`
	DailyBudget    float64         `json:"daily_budget" yaml:"daily_budget"`
	Optimization   Optimization    `json:"optimization" yaml:"optimization"`
	Targeting      TargetingSpec   `json:"targeting" yaml:"targeting"`
	Placements     PlacementConfig `json:"placements" yaml:"placements"`
	LinkURL        string          `json:"link_url" yaml:"link_url"`
	PixelEventType string          `json:"pixel_event_type,omitempty" yaml:"pixel_event_type,omitempty"`
}

// PublishConfig é a entrada única do orquestrador de publicação
type PublishConfig struct {
	Mode               PublishMode     `json:"mode" yaml:"mode"`
	Ads                []AdInput       `json:"ads" yaml:"ads"`
	Settings           PublishSettings `json:"settings" yaml:"settings"`
	ExistingCampaignID string          `json:"existing_campaign_id,omitempty" yaml:"existing_campaign_id,omitempty"`
	ExistingAdSetID    string          `json:"existing_adset_id,omitempty" yaml:"existing_adset_id,omitempty"`
}

var (
	ErrUnknownPublishMode      = errors.New("unknown publish mode")
	ErrNoAds                   = errors.New("at least one ad is required")
	ErrMissingExistingCampaign = errors.New("existing campaign id is required for mode new_adset")
	ErrMissingExistingAdSet    = errors.New("existing ad set id is required for mode existing_adset")
	ErrUnknownBudgetMode       = errors.New("budget mode must be CBO or ABO")
	ErrInvalidDailyBudget      = errors.New("daily budget must be greater than zero")
)

// Validate verifica as invariantes entre o modo e os identificadores existentes
func (c *PublishConfig) Validate() error {
	if len(c.Ads) == 0 {
		return ErrNoAds
	}

	switch c.Mode {
	case PublishModeNewCampaign:
	case PublishModeNewAdSet:
		if strings.TrimSpace(c.ExistingCampaignID) == "" {
			return ErrMissingExistingCampaign
		}
	case PublishModeExistingAdSet:
		if strings.TrimSpace(c.ExistingAdSetID) == "" {
			return ErrMissingExistingAdSet
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPublishMode, c.Mode)
	}

	switch c.Settings.BudgetMode {
	case BudgetModeABO:
	case BudgetModeCBO:
		// em new_adset o orçamento já está na campanha existente
		if c.Mode == PublishModeNewAdSet {
			return nil
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBudgetMode, c.Settings.BudgetMode)
	}

	if c.Settings.DailyBudget <= 0 {
		return ErrInvalidDailyBudget
	}

	return nil
}

// LinkFor retorna o link do anúncio, usando o link das configurações quando o anúncio não define um
func (c *PublishConfig) LinkFor(ad AdInput) string {
	if ad.LinkURL != "" {
		return ad.LinkURL
	}
	return c.Settings.LinkURL
}

// PublishResult é o acumulador do orquestrador. Os campos são preenchidos na ordem do pipeline;
// em caso de falha, tudo que foi preenchido antes da etapa que falhou continua válido.
type PublishResult struct {
	Success     bool     `json:"success"`
	CampaignID  string   `json:"campaign_id,omitempty"`
	AdSetID     string   `json:"adset_id,omitempty"`
	AdIDs       []string `json:"ad_ids"`
	CreativeIDs []string `json:"creative_ids"`
	ImageHashes []string `json:"image_hashes"`
	Error       string   `json:"error,omitempty"`
	ErrorCode   string   `json:"error_code,omitempty"`
	Details     string   `json:"details,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

func NewPublishResult() *PublishResult {
	return &PublishResult{
		AdIDs:       make([]string, 0),
		CreativeIDs: make([]string, 0),
		ImageHashes: make([]string, 0),
	}
}
