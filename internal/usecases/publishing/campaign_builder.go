package publishing

import (
	"context"
	"math"
	"net/http"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

const (
	StatusPaused          = "PAUSED"
	BidStrategyLowest     = "LOWEST_COST_WITHOUT_CAP"
	BillingImpressions    = "IMPRESSIONS"
	GoalOffsiteConversion = "OFFSITE_CONVERSIONS"
	GoalLinkClicks        = "LINK_CLICKS"
	GoalReach             = "REACH"
	GoalImpressions       = "IMPRESSIONS"
	DefaultCTA            = "LEARN_MORE"
)

//go:generate mockgen -source=campaign_builder.go -destination=mocks/builder.go -package=mocks

// EntityBuilder cria as entidades da hierarquia de anúncios, sempre pausadas
type EntityBuilder interface {
	CreateCampaign(ctx context.Context, params CampaignParams) (string, error)
	CreateAdSet(ctx context.Context, params AdSetParams) (string, error)
	CreateCreativeAndAd(ctx context.Context, params AdParams) (*AdRefs, error)
}

type Builder struct {
	client metaclient.Client
}

func NewBuilder(client metaclient.Client) *Builder {
	return &Builder{client: client}
}

type CampaignParams struct {
	Name        string
	Objective   string
	BudgetMode  domain.BudgetMode
	DailyBudget float64
}

// ToMinorUnits converte o orçamento para centavos, unidade usada pela plataforma
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CampaignPayload monta o corpo de criação da campanha.
// CBO define o orçamento diário na campanha; ABO desliga o compartilhamento e deixa o orçamento para o conjunto.
func CampaignPayload(params CampaignParams) map[string]any {
	body := map[string]any{
		"name":                  params.Name,
		"objective":             params.Objective,
		"status":                StatusPaused,
		"special_ad_categories": []string{},
		"bid_strategy":          BidStrategyLowest,
	}

	if params.BudgetMode == domain.BudgetModeCBO {
		body["daily_budget"] = ToMinorUnits(params.DailyBudget)
	} else {
		body["is_adset_budget_sharing_enabled"] = false
	}

	return body
}

func (b *Builder) CreateCampaign(ctx context.Context, params CampaignParams) (string, error) {
	accountID, err := b.client.Session().RequireAccount()
	if err != nil {
		return "", NewPublishError(ErrCampaignCreation, apiErrors.ErrPublishConfiguration, StepCampaign, err)
	}

	var resp metadomain.CreateResponse
	err = b.client.Request(ctx, metaclient.AccountPath(accountID)+"/campaigns", metaclient.RequestOptions{
		Method:      http.MethodPost,
		Body:        CampaignPayload(params),
		FormEncoded: true,
	}, &resp)
	if err != nil {
		return "", NewPublishError(ErrCampaignCreation, apiErrors.ErrCampaignCreation, StepCampaign, err)
	}

	if resp.ID == "" {
		return "", &PublishError{
			Err:     ErrCampaignCreation,
			Code:    apiErrors.ErrCampaignCreation,
			Step:    StepCampaign,
			AdIndex: -1,
			Details: "platform returned no campaign id",
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id":  accountID,
		"campaign_id": resp.ID,
		"objective":   params.Objective,
		"budget_mode": params.BudgetMode,
	}).Info("publishing: campaign created")

	return resp.ID, nil
}
