package publishing

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

// PromotedObject liga a otimização do conjunto a um pixel e a um evento
type PromotedObject struct {
	PixelID         string
	CustomEventType string
}

type AdSetParams struct {
	Name           string
	CampaignID     string
	Objective      string
	BudgetMode     domain.BudgetMode
	DailyBudget    float64
	Optimization   domain.Optimization
	Targeting      domain.TargetingSpec
	Placements     domain.PlacementConfig
	PromotedObject *PromotedObject
}

// ResolveOptimizationGoal aplica a regra de otimização: com promoted object a meta é sempre conversão;
// sem ele, conversão é rebaixada para cliques porque a plataforma a rejeita sem pixel.
func ResolveOptimizationGoal(requested domain.Optimization, objective string, promoted bool) string {
	if promoted {
		return GoalOffsiteConversion
	}

	switch requested {
	case domain.OptimizationConversions:
		logrus.WithField("requested", requested).Info("publishing: conversions optimization without pixel, using link clicks")
		return GoalLinkClicks
	case domain.OptimizationClicks:
		return GoalLinkClicks
	case domain.OptimizationReach:
		return GoalReach
	case domain.OptimizationImpressions:
		return GoalImpressions
	}

	if objective == domain.ObjectiveAwareness {
		return GoalReach
	}
	return GoalLinkClicks
}

// BuildTargeting traduz a segmentação para o formato aninhado da plataforma. spec é recebido por valor e não é alterado.
func BuildTargeting(spec domain.TargetingSpec, placements domain.PlacementConfig) map[string]any {
	targeting := map[string]any{
		"geo_locations": map[string]any{"countries": append([]string{}, spec.GeoCountries...)},
	}

	if spec.AgeMin > 0 {
		targeting["age_min"] = spec.AgeMin
	}
	if spec.AgeMax > 0 {
		targeting["age_max"] = spec.AgeMax
	}

	if !spec.TargetsAllGenders() {
		genders := make([]int, 0, len(spec.Genders))
		for _, g := range spec.Genders {
			switch g {
			case domain.GenderMale:
				genders = append(genders, 1)
			case domain.GenderFemale:
				genders = append(genders, 2)
			}
		}
		if len(genders) > 0 {
			targeting["genders"] = genders
		}
	}

	flexible := make([]map[string]any, 0, len(spec.InterestGroups))
	for _, group := range spec.InterestGroups {
		if len(group) == 0 {
			continue
		}

		byType := map[string][]map[string]string{}
		for _, entity := range group {
			kind := entity.Type
			if kind == "" {
				kind = "interests"
			}
			byType[kind] = append(byType[kind], map[string]string{"id": entity.ID, "name": entity.Name})
		}

		item := make(map[string]any, len(byType))
		for kind, entities := range byType {
			item[kind] = entities
		}
		flexible = append(flexible, item)
	}
	if len(flexible) > 0 {
		targeting["flexible_spec"] = flexible
	}

	if audiences := audienceRefs(spec.IncludedAudiences); len(audiences) > 0 {
		targeting["custom_audiences"] = audiences
	}
	if audiences := audienceRefs(spec.ExcludedAudiences); len(audiences) > 0 {
		targeting["excluded_custom_audiences"] = audiences
	}

	if !placements.Automatic {
		if len(placements.Platforms) > 0 {
			targeting["publisher_platforms"] = append([]string{}, placements.Platforms...)
		}
		if len(placements.FacebookPositions) > 0 {
			targeting["facebook_positions"] = append([]string{}, placements.FacebookPositions...)
		}
		if len(placements.InstagramPositions) > 0 {
			targeting["instagram_positions"] = append([]string{}, placements.InstagramPositions...)
		}
	}

	return targeting
}

func audienceRefs(ids []string) []map[string]string {
	refs := make([]map[string]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			refs = append(refs, map[string]string{"id": id})
		}
	}
	return refs
}

// AdSetPayload monta o corpo de criação do conjunto de anúncios. daily_budget só existe em ABO.
func AdSetPayload(params AdSetParams) map[string]any {
	body := map[string]any{
		"name":              params.Name,
		"campaign_id":       params.CampaignID,
		"billing_event":     BillingImpressions,
		"optimization_goal": ResolveOptimizationGoal(params.Optimization, params.Objective, params.PromotedObject != nil),
		"targeting":         BuildTargeting(params.Targeting, params.Placements),
		"status":            StatusPaused,
	}

	if params.BudgetMode == domain.BudgetModeABO {
		body["daily_budget"] = ToMinorUnits(params.DailyBudget)
	}

	if params.PromotedObject != nil {
		eventType := params.PromotedObject.CustomEventType
		if eventType == "" {
			eventType = domain.DefaultPixelEventType
		}
		body["promoted_object"] = map[string]any{
			"pixel_id":          params.PromotedObject.PixelID,
			"custom_event_type": eventType,
		}
	}

	return body
}

func (b *Builder) CreateAdSet(ctx context.Context, params AdSetParams) (string, error) {
	accountID, err := b.client.Session().RequireAccount()
	if err != nil {
		return "", NewPublishError(ErrAdSetCreation, apiErrors.ErrPublishConfiguration, StepAdSet, err)
	}

	body := AdSetPayload(params)

	var resp metadomain.CreateResponse
	err = b.client.Request(ctx, metaclient.AccountPath(accountID)+"/adsets", metaclient.RequestOptions{
		Method:      http.MethodPost,
		Body:        body,
		FormEncoded: true,
	}, &resp)
	if err != nil {
		return "", NewPublishError(ErrAdSetCreation, apiErrors.ErrAdSetCreation, StepAdSet, err)
	}

	if resp.ID == "" {
		return "", &PublishError{
			Err:     ErrAdSetCreation,
			Code:    apiErrors.ErrAdSetCreation,
			Step:    StepAdSet,
			AdIndex: -1,
			Details: "platform returned no ad set id",
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id":        accountID,
		"campaign_id":       params.CampaignID,
		"adset_id":          resp.ID,
		"optimization_goal": body["optimization_goal"],
	}).Info("publishing: ad set created")

	return resp.ID, nil
}
