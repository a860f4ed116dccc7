package meta

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

const (
	adAccountFields       = "id,account_id,name,account_status,disable_reason,currency"
	campaignInsightFields = "campaign_id,campaign_name,objective,spend,impressions,clicks,actions"

	// limite de páginas seguidas por listagem paginada
	maxPages = 20
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Integrator agrupa as leituras da Graph API usadas pelo publicador e pelos relatórios
type Integrator interface {
	GetAdAccount(ctx context.Context, accountID string) (*metadomain.AdAccount, error)
	GetPage(ctx context.Context, pageID string) (*metadomain.Page, error)
	ListPromotePages(ctx context.Context, accountID string) ([]metadomain.Page, error)
	GetCampaign(ctx context.Context, campaignID string) (*metadomain.Campaign, error)
	GetPermissions(ctx context.Context) (*metadomain.PermissionsResponse, error)
	GetCampaignInsights(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]metadomain.CampaignInsight, error)
}

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) GetAdAccount(ctx context.Context, accountID string) (*metadomain.AdAccount, error) {
	var account metadomain.AdAccount
	err := s.Client.Request(ctx, metaclient.AccountPath(accountID), metaclient.RequestOptions{
		Method: http.MethodGet,
		Params: map[string]string{"fields": adAccountFields},
	}, &account)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: failed to get ad account")
		return nil, err
	}

	return &account, nil
}

func (s *MetaIntegrator) GetPage(ctx context.Context, pageID string) (*metadomain.Page, error) {
	var page metadomain.Page
	err := s.Client.Request(ctx, pageID, metaclient.RequestOptions{
		Method: http.MethodGet,
		Params: map[string]string{"fields": "id,name"},
	}, &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// ListPromotePages lista as páginas que a conta pode promover, seguindo os cursores
func (s *MetaIntegrator) ListPromotePages(ctx context.Context, accountID string) ([]metadomain.Page, error) {
	endpoint := metaclient.AccountPath(accountID) + "/promote_pages"
	pages := make([]metadomain.Page, 0)
	after := ""

	for range maxPages {
		params := map[string]string{"fields": "id,name", "limit": "100"}
		if after != "" {
			params["after"] = after
		}

		var resp metadomain.PromotePagesResponse
		err := s.Client.Request(ctx, endpoint, metaclient.RequestOptions{Method: http.MethodGet, Params: params}, &resp)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("meta: failed to list promote pages")
			return nil, err
		}

		pages = append(pages, resp.Data...)

		if resp.Paging.Next == "" || resp.Paging.Cursors.After == "" {
			break
		}
		after = resp.Paging.Cursors.After
	}

	return pages, nil
}

func (s *MetaIntegrator) GetCampaign(ctx context.Context, campaignID string) (*metadomain.Campaign, error) {
	var campaign metadomain.Campaign
	err := s.Client.Request(ctx, campaignID, metaclient.RequestOptions{
		Method: http.MethodGet,
		Params: map[string]string{"fields": "id,name,status,effective_status,objective,daily_budget"},
	}, &campaign)
	if err != nil {
		return nil, err
	}

	return &campaign, nil
}

func (s *MetaIntegrator) GetPermissions(ctx context.Context) (*metadomain.PermissionsResponse, error) {
	var resp metadomain.PermissionsResponse
	if err := s.Client.Request(ctx, "me/permissions", metaclient.RequestOptions{Method: http.MethodGet}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetCampaignInsights busca os insights no nível de campanha do período informado
func (s *MetaIntegrator) GetCampaignInsights(ctx context.Context, accountID string, filters *domain.InsightFilters) ([]metadomain.CampaignInsight, error) {
	endpoint := metaclient.AccountPath(accountID) + "/insights"
	insights := make([]metadomain.CampaignInsight, 0)
	after := ""

	for range maxPages {
		params := map[string]string{
			"level":  "campaign",
			"fields": campaignInsightFields,
			"limit":  "200",
		}
		if timeRange := timeRangeParam(filters); timeRange != "" {
			params["time_range"] = timeRange
		}
		if after != "" {
			params["after"] = after
		}

		var resp metadomain.CampaignInsightsResponse
		err := s.Client.Request(ctx, endpoint, metaclient.RequestOptions{Method: http.MethodGet, Params: params}, &resp)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("insights: failed to get campaign insights from API")
			return nil, err
		}

		insights = append(insights, resp.Data...)

		if resp.Paging.Next == "" || resp.Paging.Cursors.After == "" {
			break
		}
		after = resp.Paging.Cursors.After
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"campaigns":  len(insights),
	}).Debug("insights: successfully retrieved campaign insights")

	return insights, nil
}

func timeRangeParam(filters *domain.InsightFilters) string {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return ""
	}
	return fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		filters.StartDate.Format(time.DateOnly),
		filters.EndDate.Format(time.DateOnly),
	)
}

// FactoryCampaignInsightRow converte os campos textuais da plataforma em números
func FactoryCampaignInsightRow(insight *metadomain.CampaignInsight) domain.CampaignInsightRow {
	return domain.CampaignInsightRow{
		CampaignID:   insight.CampaignID,
		CampaignName: insight.CampaignName,
		Objective:    insight.Objective,
		Spend:        parseFloat("spend", insight.Spend),
		Impressions:  int(parseFloat("impressions", insight.Impressions)),
		Clicks:       int(parseFloat("clicks", insight.Clicks)),
		Conversions:  insight.GetResult(),
	}
}

func parseFloat(field, value string) float64 {
	if value == "" {
		return 0
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"field": field,
			"value": value,
		}).WithError(err).Warn("insights: error converting metric")
		return 0
	}
	return v
}
