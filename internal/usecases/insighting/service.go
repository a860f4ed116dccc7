package insighting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/utils"
)

const defaultPeriod = 30 * 24 * time.Hour

var ErrInvalidPeriod = errors.New("since must not be after until")

// objectiveTypes mapeia objetivos ODAX e legados para as categorias de agregação
var objectiveTypes = map[string]domain.CampaignType{
	domain.ObjectiveSales:     domain.CampaignTypeSales,
	"CONVERSIONS":             domain.CampaignTypeSales,
	"PRODUCT_CATALOG_SALES":   domain.CampaignTypeSales,
	domain.ObjectiveTraffic:   domain.CampaignTypeTraffic,
	"LINK_CLICKS":             domain.CampaignTypeTraffic,
	domain.ObjectiveLeads:     domain.CampaignTypeLeads,
	"LEAD_GENERATION":         domain.CampaignTypeLeads,
	domain.ObjectiveAwareness: domain.CampaignTypeAwareness,
	"REACH":                   domain.CampaignTypeAwareness,
	"BRAND_AWARENESS":         domain.CampaignTypeAwareness,
}

type Service struct {
	integrator meta.Integrator
	now        func() time.Time
}

func NewService(integrator meta.Integrator) Insighter {
	return &Service{
		integrator: integrator,
		now:        time.Now,
	}
}

// DefaultPeriod completa as datas ausentes: até hoje e desde 30 dias antes do fim
func DefaultPeriod(since, until, now time.Time) (time.Time, time.Time) {
	if until.IsZero() {
		until = now
	}
	if since.IsZero() {
		since = until.Add(-defaultPeriod)
	}
	return since, until
}

func (s *Service) FetchCampaignInsights(ctx context.Context, accountID string, since, until time.Time) ([]domain.CampaignInsightRow, error) {
	since, until = DefaultPeriod(since, until, s.now())
	if since.After(until) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidPeriod, utils.FormatDate(since), utils.FormatDate(until))
	}

	insights, err := s.integrator.GetCampaignInsights(ctx, accountID, &domain.InsightFilters{
		StartDate: &since,
		EndDate:   &until,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insighting: failed to fetch campaign insights")
		return nil, err
	}

	rows := make([]domain.CampaignInsightRow, 0, len(insights))
	for i := range insights {
		rows = append(rows, meta.FactoryCampaignInsightRow(&insights[i]))
	}

	return rows, nil
}

func (s *Service) GetInsightsByType(ctx context.Context, accountID string, since, until time.Time) (*domain.InsightsByTypeResponse, error) {
	since, until = DefaultPeriod(since, until, s.now())

	rows, err := s.FetchCampaignInsights(ctx, accountID, since, until)
	if err != nil {
		return nil, err
	}

	return &domain.InsightsByTypeResponse{
		AccountID: accountID,
		StartDate: utils.FormatDate(since),
		EndDate:   utils.FormatDate(until),
		Types:     AggregateByType(rows),
	}, nil
}

// ClassifyObjective devolve a categoria do objetivo; false para objetivos fora das quatro categorias
func ClassifyObjective(objective string) (domain.CampaignType, bool) {
	campaignType, ok := objectiveTypes[objective]
	return campaignType, ok
}

// AggregateByType sempre devolve as quatro categorias, na ordem de domain.CampaignTypes, mesmo sem linhas
func AggregateByType(rows []domain.CampaignInsightRow) []domain.TypeAggregate {
	byType := make(map[domain.CampaignType]*domain.TypeAggregate, len(domain.CampaignTypes))
	for _, campaignType := range domain.CampaignTypes {
		byType[campaignType] = &domain.TypeAggregate{Type: campaignType}
	}

	for _, row := range rows {
		campaignType, ok := ClassifyObjective(row.Objective)
		if !ok {
			logrus.WithFields(logrus.Fields{
				"campaign_id": row.CampaignID,
				"objective":   row.Objective,
			}).Debug("insighting: objective outside aggregated types, skipping")
			continue
		}

		agg := byType[campaignType]
		agg.Campaigns++
		agg.Spend += row.Spend
		agg.Impressions += row.Impressions
		agg.Clicks += row.Clicks
		agg.Conversions += row.Conversions
	}

	result := make([]domain.TypeAggregate, 0, len(domain.CampaignTypes))
	for _, campaignType := range domain.CampaignTypes {
		agg := byType[campaignType]
		agg.Spend = utils.RoundWithTwoDecimalPlace(agg.Spend)
		agg.CTR = utils.Ratio(float64(agg.Clicks)*100, float64(agg.Impressions))
		agg.CPC = utils.Ratio(agg.Spend, float64(agg.Clicks))
		agg.CostPerConversion = utils.Ratio(agg.Spend, float64(agg.Conversions))
		result = append(result, *agg)
	}

	return result
}
