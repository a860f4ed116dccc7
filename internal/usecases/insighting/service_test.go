package insighting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestAggregateByType(t *testing.T) {
	t.Run("sem linhas retorna as quatro categorias zeradas", func(t *testing.T) {
		result := AggregateByType(nil)

		require.Len(t, result, 4)
		for i, campaignType := range domain.CampaignTypes {
			assert.Equal(t, domain.TypeAggregate{Type: campaignType}, result[i])
		}
	})

	t.Run("agrega por categoria e calcula as taxas", func(t *testing.T) {
		rows := []domain.CampaignInsightRow{
			{CampaignID: "1", Objective: domain.ObjectiveSales, Spend: 100, Impressions: 1000, Clicks: 50, Conversions: 4},
			{CampaignID: "2", Objective: "CONVERSIONS", Spend: 50.5, Impressions: 1000, Clicks: 25, Conversions: 1},
			{CampaignID: "3", Objective: domain.ObjectiveTraffic, Spend: 30, Impressions: 3000, Clicks: 90},
			{CampaignID: "4", Objective: domain.ObjectiveEngagement, Spend: 999, Impressions: 1, Clicks: 1},
		}

		result := AggregateByType(rows)

		require.Len(t, result, 4)

		sales := result[0]
		assert.Equal(t, domain.CampaignTypeSales, sales.Type)
		assert.Equal(t, 2, sales.Campaigns)
		assert.Equal(t, 150.5, sales.Spend)
		assert.Equal(t, 2000, sales.Impressions)
		assert.Equal(t, 75, sales.Clicks)
		assert.Equal(t, 5, sales.Conversions)
		assert.Equal(t, 3.75, sales.CTR)
		assert.Equal(t, 2.01, sales.CPC)
		assert.Equal(t, 30.1, sales.CostPerConversion)

		traffic := result[1]
		assert.Equal(t, 1, traffic.Campaigns)
		assert.Equal(t, 3.0, traffic.CTR)
		assert.Equal(t, 0.33, traffic.CPC)
		assert.Zero(t, traffic.CostPerConversion)

		assert.Zero(t, result[2].Campaigns)
		assert.Zero(t, result[3].Campaigns)
	})
}

func TestClassifyObjective(t *testing.T) {
	tests := []struct {
		objective string
		want      domain.CampaignType
		ok        bool
	}{
		{domain.ObjectiveSales, domain.CampaignTypeSales, true},
		{"LINK_CLICKS", domain.CampaignTypeTraffic, true},
		{"LEAD_GENERATION", domain.CampaignTypeLeads, true},
		{"REACH", domain.CampaignTypeAwareness, true},
		{domain.ObjectiveEngagement, "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.objective, func(t *testing.T) {
			got, ok := ClassifyObjective(tt.objective)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultPeriod(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

	since, until := DefaultPeriod(time.Time{}, time.Time{}, now)
	assert.Equal(t, now, until)
	assert.Equal(t, now.Add(-30*24*time.Hour), since)

	explicit := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	since, until = DefaultPeriod(explicit, time.Time{}, now)
	assert.Equal(t, explicit, since)
	assert.Equal(t, now, until)
}

func TestService_GetInsightsByType(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("converte as linhas da plataforma e agrega", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := metamocks.NewMockIntegrator(ctrl)

		integrator.EXPECT().
			GetCampaignInsights(gomock.Any(), "1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, filters *domain.InsightFilters) ([]metadomain.CampaignInsight, error) {
				assert.Equal(t, since, *filters.StartDate)
				assert.Equal(t, until, *filters.EndDate)
				return []metadomain.CampaignInsight{
					{
						CampaignID:  "c1",
						Objective:   domain.ObjectiveTraffic,
						Spend:       "10.50",
						Impressions: "1000",
						Clicks:      "20",
						Actions:     []metadomain.Action{{ActionType: "link_click", Value: "18"}},
					},
				}, nil
			})

		service := NewService(integrator)
		resp, err := service.GetInsightsByType(context.Background(), "1", since, until)

		require.NoError(t, err)
		assert.Equal(t, "1", resp.AccountID)
		assert.Equal(t, "2025-06-01", resp.StartDate)
		assert.Equal(t, "2025-06-30", resp.EndDate)
		require.Len(t, resp.Types, 4)

		traffic := resp.Types[1]
		assert.Equal(t, 1, traffic.Campaigns)
		assert.Equal(t, 10.5, traffic.Spend)
		assert.Equal(t, 18, traffic.Conversions)
		assert.Equal(t, 2.0, traffic.CTR)
	})

	t.Run("período invertido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service := NewService(metamocks.NewMockIntegrator(ctrl))

		_, err := service.GetInsightsByType(context.Background(), "1", until, since)

		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})

	t.Run("erro da plataforma", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		integrator := metamocks.NewMockIntegrator(ctrl)
		integrator.EXPECT().GetCampaignInsights(gomock.Any(), "1", gomock.Any()).Return(nil, errors.New("boom"))

		_, err := NewService(integrator).GetInsightsByType(context.Background(), "1", since, until)

		assert.EqualError(t, err, "boom")
	})
}
