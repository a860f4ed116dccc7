package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient/mocks"
	repomocks "github.com/vfg2006/ad-publisher-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/api/handler"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	publishmocks "github.com/vfg2006/ad-publisher-api/internal/usecases/publishing/mocks"
	validatingmocks "github.com/vfg2006/ad-publisher-api/internal/usecases/validating/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
	"go.uber.org/mock/gomock"
)

const publishBody = `{
	"mode": "new_campaign",
	"ads": [{"image": "https://cdn/x.png", "headline": "h", "body": "b", "cta": "SHOP_NOW"}],
	"settings": {"budget_mode": "CBO", "daily_budget": 50, "campaign_objective": "OUTCOME_TRAFFIC"}
}`

func TestPublishAds(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.PublishResult
		saveErr    error
		wantStatus int
		wantRunID  string
	}{
		{
			name: "publicação completa",
			result: &domain.PublishResult{
				Success:     true,
				CampaignID:  "c1",
				AdSetID:     "as1",
				AdIDs:       []string{"ad1"},
				CreativeIDs: []string{"cr1"},
				ImageHashes: []string{"h1"},
			},
			wantStatus: http.StatusOK,
			wantRunID:  "run1",
		},
		{
			name: "falha parcial mantém os ids criados",
			result: &domain.PublishResult{
				Success:    false,
				CampaignID: "c1",
				AdIDs:      []string{},
				Error:      "ad set creation failed",
				ErrorCode:  "PUB_005",
			},
			wantStatus: http.StatusBadGateway,
			wantRunID:  "run1",
		},
		{
			name:       "falha ao registrar não muda a resposta",
			result:     &domain.PublishResult{Success: true, CampaignID: "c1"},
			saveErr:    errors.New("db down"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			publisher := publishmocks.NewMockPublisher(ctrl)
			runs := repomocks.NewMockPublishRunRepository(ctrl)

			publisher.EXPECT().
				PublishAds(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, cfg *domain.PublishConfig) *domain.PublishResult {
					assert.Equal(t, domain.PublishModeNewCampaign, cfg.Mode)
					assert.Len(t, cfg.Ads, 1)
					return tt.result
				})
			runs.EXPECT().
				Save(gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, run *domain.PublishRun) error {
					assert.Equal(t, testOrg, run.OrganizationID)
					assert.Equal(t, tt.result, run.Result)
					if tt.saveErr != nil {
						return tt.saveErr
					}
					run.ID = "run1"
					return nil
				})

			clients := &staticClients{client: mocks.NewMockClient(ctrl)}
			routes := handler.Publishing(clients, usecasesWith(publisher, nil, nil), runs)
			req := httptest.NewRequest(http.MethodPost, "/v1/ads/publish", strings.NewReader(publishBody))

			rec := serve(t, routes, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.result.CampaignID, resp["campaign_id"])
			assert.Equal(t, tt.result.Success, resp["success"])
			if tt.wantRunID != "" {
				assert.Equal(t, tt.wantRunID, resp["run_id"])
			} else {
				assert.NotContains(t, resp, "run_id")
			}
			assert.Equal(t, []string{testOrg}, clients.orgs)
		})
	}
}

func TestPublishAds_InvalidBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	runs := repomocks.NewMockPublishRunRepository(ctrl)
	clients := &staticClients{}

	req := httptest.NewRequest(http.MethodPost, "/v1/ads/publish", strings.NewReader(`{"ads": "nope"`))
	rec := serve(t, handler.Publishing(clients, handler.Usecases{}, runs), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VAL_001")
	assert.Empty(t, clients.orgs)
}

func TestGetPublishRun(t *testing.T) {
	tests := []struct {
		name       string
		run        *domain.PublishRun
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "run encontrado",
			run:        &domain.PublishRun{ID: "run1", OrganizationID: testOrg, Mode: domain.PublishModeNewCampaign, Result: &domain.PublishResult{Success: true, CampaignID: "c1"}},
			wantStatus: http.StatusOK,
			wantBody:   `"campaign_id":"c1"`,
		},
		{
			name:       "run inexistente ou de outra organização",
			wantStatus: http.StatusNotFound,
			wantBody:   "PUB_008",
		},
		{
			name:       "erro no banco",
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "SRV_002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			runs := repomocks.NewMockPublishRunRepository(ctrl)
			runs.EXPECT().GetByID(gomock.Any(), testOrg, "run1").Return(tt.run, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/v1/publish-runs/run1", nil)
			rec := serve(t, handler.Publishing(&staticClients{}, handler.Usecases{}, runs), req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestValidatePage(t *testing.T) {
	ctrl := gomock.NewController(t)
	validator := validatingmocks.NewMockPageValidator(ctrl)
	validator.EXPECT().
		Validate(gomock.Any(), "p9").
		Return(&validating.ValidationResult{Valid: true, PageName: "Loja"})

	clients := &staticClients{client: mocks.NewMockClient(ctrl)}
	routes := handler.Publishing(clients, usecasesWith(nil, validator, nil), repomocks.NewMockPublishRunRepository(ctrl))

	rec := serve(t, routes, httptest.NewRequest(http.MethodGet, "/v1/pages/p9/validate", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"valid":true,"page_name":"Loja"}`, rec.Body.String())
}
