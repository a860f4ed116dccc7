package publishing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	metamocks "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing/mocks"
	uploadingmocks "github.com/vfg2006/ad-publisher-api/internal/usecases/uploading/mocks"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
	validatingmocks "github.com/vfg2006/ad-publisher-api/internal/usecases/validating/mocks"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	validator    *validatingmocks.MockPageValidator
	uploader     *uploadingmocks.MockImageUploader
	integrator   *metamocks.MockIntegrator
	builder      *mocks.MockEntityBuilder
	orchestrator *publishing.Orchestrator
}

func newFixture(t *testing.T, pixelID string) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		validator:  validatingmocks.NewMockPageValidator(ctrl),
		uploader:   uploadingmocks.NewMockImageUploader(ctrl),
		integrator: metamocks.NewMockIntegrator(ctrl),
		builder:    mocks.NewMockEntityBuilder(ctrl),
	}

	session := &metaclient.Session{
		Transport:   metaclient.TransportDirect,
		Credentials: domain.Credentials{AdAccountID: "1", PageID: "p1", PixelID: pixelID},
	}
	f.orchestrator = publishing.NewOrchestrator(session, f.validator, f.uploader, f.integrator, f.builder, fastPoller(3))

	return f
}

func (f *fixture) pageValid() {
	f.validator.EXPECT().Validate(gomock.Any(), "p1").Return(&validating.ValidationResult{Valid: true, PageName: "Loja"})
}

func (f *fixture) uploads(n int) {
	for i := range n {
		f.uploader.EXPECT().Upload(gomock.Any(), imageFor(i)).Return(hashFor(i), nil)
	}
}

func (f *fixture) healthyAccount() {
	f.integrator.EXPECT().GetAdAccount(gomock.Any(), "1").Return(&metadomain.AdAccount{ID: "act_1", AccountStatus: 1, Name: "Loja"}, nil)
	f.integrator.EXPECT().GetPermissions(gomock.Any()).Return(&metadomain.PermissionsResponse{
		Data: []metadomain.Permission{{Permission: "ads_management", Status: "granted"}},
	}, nil)
}

func (f *fixture) campaignVisible(id string) {
	f.integrator.EXPECT().GetCampaign(gomock.Any(), id).Return(&metadomain.Campaign{ID: id}, nil)
}

func imageFor(i int) string { return []string{"https://cdn/a.png", "https://cdn/b.png", "https://cdn/c.png"}[i] }
func hashFor(i int) string  { return []string{"h0", "h1", "h2"}[i] }

func newConfig(ads int, mode domain.PublishMode) *domain.PublishConfig {
	cfg := &domain.PublishConfig{
		Mode: mode,
		Settings: domain.PublishSettings{
			CampaignName: "Campanha",
			AdSetName:    "Conjunto",
			AdNamePrefix: "Anúncio",
			Objective:    domain.ObjectiveTraffic,
			BudgetMode:   domain.BudgetModeCBO,
			DailyBudget:  50,
			Optimization: domain.OptimizationClicks,
			Targeting:    domain.TargetingSpec{GeoCountries: []string{"BR"}},
			Placements:   domain.PlacementConfig{Automatic: true},
			LinkURL:      "https://loja.com",
		},
	}
	for i := range ads {
		cfg.Ads = append(cfg.Ads, domain.AdInput{Image: imageFor(i), Headline: "Título", Body: "Texto", CTA: "LEARN_MORE"})
	}
	return cfg
}

func TestOrchestrator_PublishAds_Success(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(2)
	f.healthyAccount()

	f.builder.EXPECT().CreateCampaign(gomock.Any(), publishing.CampaignParams{
		Name: "Campanha", Objective: domain.ObjectiveTraffic, BudgetMode: domain.BudgetModeCBO, DailyBudget: 50,
	}).Return("c1", nil)
	f.campaignVisible("c1")
	f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.AdSetParams) (string, error) {
		assert.Equal(t, "c1", p.CampaignID)
		assert.Nil(t, p.PromotedObject)
		return "as1", nil
	})
	f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.AdParams) (*publishing.AdRefs, error) {
		assert.Equal(t, "as1", p.AdSetID)
		assert.Equal(t, "p1", p.PageID)
		assert.Equal(t, "https://loja.com", p.LinkURL)
		return &publishing.AdRefs{AdID: "ad-" + p.ImageHash, CreativeID: "cr-" + p.ImageHash}, nil
	}).Times(2)

	result := f.orchestrator.PublishAds(context.Background(), newConfig(2, domain.PublishModeNewCampaign))

	assert.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, "c1", result.CampaignID)
	assert.Equal(t, "as1", result.AdSetID)
	assert.Equal(t, []string{"h0", "h1"}, result.ImageHashes)
	assert.Equal(t, []string{"ad-h0", "ad-h1"}, result.AdIDs)
	assert.Equal(t, []string{"cr-h0", "cr-h1"}, result.CreativeIDs)
}

func TestOrchestrator_PublishAds_UploadFailureAtIndex(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploader.EXPECT().Upload(gomock.Any(), imageFor(0)).Return("h0", nil)
	f.uploader.EXPECT().Upload(gomock.Any(), imageFor(1)).Return("", errors.New("fetch image: status 404"))

	result := f.orchestrator.PublishAds(context.Background(), newConfig(3, domain.PublishModeNewCampaign))

	assert.False(t, result.Success)
	assert.Equal(t, []string{"h0"}, result.ImageHashes)
	assert.Empty(t, result.CampaignID)
	assert.Empty(t, result.AdSetID)
	assert.Empty(t, result.AdIDs)
	assert.Equal(t, apiErrors.ErrImageUpload, result.ErrorCode)
	assert.Contains(t, result.Error, "(ad 1)")
}

func TestOrchestrator_PublishAds_PageWarningIsNotFatal(t *testing.T) {
	f := newFixture(t, "")
	f.validator.EXPECT().Validate(gomock.Any(), "p1").Return(&validating.ValidationResult{
		Valid: false, Error: "page p1 is not linked", Diagnosis: "Business Manager",
	})
	f.uploads(1)
	f.healthyAccount()
	f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("c1", nil)
	f.campaignVisible("c1")
	f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).Return("as1", nil)
	f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).Return(&publishing.AdRefs{AdID: "ad1", CreativeID: "cr1"}, nil)

	result := f.orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.True(t, result.Success)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "page p1 is not linked")
}

func TestOrchestrator_PublishAds_AccountInactive(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(1)
	f.integrator.EXPECT().GetAdAccount(gomock.Any(), "1").Return(&metadomain.AdAccount{AccountStatus: 2, Name: "Loja"}, nil)
	f.integrator.EXPECT().GetPermissions(gomock.Any()).Return(nil, errors.New("boom"))

	result := f.orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.False(t, result.Success)
	assert.Equal(t, apiErrors.ErrAccountInactive, result.ErrorCode)
	assert.Contains(t, result.Error, "DISABLED")
	assert.Contains(t, result.Details, "token scopes: unavailable")
	assert.Equal(t, []string{"h0"}, result.ImageHashes)
	assert.Empty(t, result.CampaignID)
}

func TestOrchestrator_PublishAds_AccountReadFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(1)
	f.integrator.EXPECT().GetAdAccount(gomock.Any(), "1").Return(nil, errors.New("timeout"))
	f.integrator.EXPECT().GetPermissions(gomock.Any()).Return(&metadomain.PermissionsResponse{}, nil)
	f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("c1", nil)
	f.campaignVisible("c1")
	f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).Return("as1", nil)
	f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).Return(&publishing.AdRefs{AdID: "ad1", CreativeID: "cr1"}, nil)

	result := f.orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.True(t, result.Success)
}

func TestOrchestrator_PublishAds_Objective(t *testing.T) {
	tests := []struct {
		name             string
		pixelID          string
		optimization     domain.Optimization
		wantObjective    string
		wantOptimization domain.Optimization
		wantPromoted     *publishing.PromotedObject
	}{
		{
			name:             "vendas sem pixel vira tráfego",
			optimization:     domain.OptimizationConversions,
			wantObjective:    domain.ObjectiveTraffic,
			wantOptimization: domain.OptimizationClicks,
		},
		{
			name:             "vendas sem pixel com alcance otimiza para cliques",
			optimization:     domain.OptimizationReach,
			wantObjective:    domain.ObjectiveTraffic,
			wantOptimization: domain.OptimizationClicks,
		},
		{
			name:             "vendas sem pixel com impressões otimiza para cliques",
			optimization:     domain.OptimizationImpressions,
			wantObjective:    domain.ObjectiveTraffic,
			wantOptimization: domain.OptimizationClicks,
		},
		{
			name:             "vendas com pixel mantém o objetivo e envia promoted object",
			pixelID:          "px1",
			optimization:     domain.OptimizationConversions,
			wantObjective:    domain.ObjectiveSales,
			wantOptimization: domain.OptimizationConversions,
			wantPromoted:     &publishing.PromotedObject{PixelID: "px1", CustomEventType: "COMPLETE_REGISTRATION"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.pixelID)
			f.pageValid()
			f.uploads(1)
			f.healthyAccount()

			f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.CampaignParams) (string, error) {
				assert.Equal(t, tt.wantObjective, p.Objective)
				return "c1", nil
			})
			f.campaignVisible("c1")
			f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.AdSetParams) (string, error) {
				assert.Equal(t, tt.wantObjective, p.Objective)
				assert.Equal(t, tt.wantOptimization, p.Optimization)
				assert.Equal(t, tt.wantPromoted, p.PromotedObject)
				return "as1", nil
			})
			f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.AdParams) (*publishing.AdRefs, error) {
				assert.Equal(t, tt.pixelID, p.PixelID)
				return &publishing.AdRefs{AdID: "ad1", CreativeID: "cr1"}, nil
			})

			cfg := newConfig(1, domain.PublishModeNewCampaign)
			cfg.Settings.Objective = domain.ObjectiveSales
			cfg.Settings.Optimization = tt.optimization
			cfg.Settings.PixelEventType = "COMPLETE_REGISTRATION"

			result := f.orchestrator.PublishAds(context.Background(), cfg)

			assert.True(t, result.Success)
		})
	}
}

// Sucesso parcial é preservado: nada é desfeito na plataforma
func TestOrchestrator_PublishAds_PartialSuccessIsPreserved(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(3)
	f.healthyAccount()
	f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("c1", nil)
	f.campaignVisible("c1")
	f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).Return("as1", nil)
	gomock.InOrder(
		f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).Return(&publishing.AdRefs{AdID: "ad1", CreativeID: "cr1"}, nil),
		f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).Return(nil,
			publishing.NewPublishError(publishing.ErrAdCreation, apiErrors.ErrAdCreation, publishing.StepAds,
				&metaclient.APIError{Code: 100, Message: "Invalid image hash", FBTraceID: "trace"})),
	)

	result := f.orchestrator.PublishAds(context.Background(), newConfig(3, domain.PublishModeNewCampaign))

	assert.False(t, result.Success)
	assert.Equal(t, "c1", result.CampaignID)
	assert.Equal(t, "as1", result.AdSetID)
	assert.Equal(t, []string{"h0", "h1", "h2"}, result.ImageHashes)
	assert.Equal(t, []string{"ad1"}, result.AdIDs)
	assert.Equal(t, []string{"cr1"}, result.CreativeIDs)
	assert.Equal(t, apiErrors.ErrAdCreation, result.ErrorCode)
	assert.Contains(t, result.Error, "(ad 1)")
	assert.Contains(t, result.Details, "fbtrace_id=trace")
	assert.Contains(t, result.Details, "token scopes: ads_management")
}

func TestOrchestrator_PublishAds_CreativeReadFailureKeepsAdID(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(1)
	f.healthyAccount()
	f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("c1", nil)
	f.campaignVisible("c1")
	f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).Return("as1", nil)
	f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).Return(&publishing.AdRefs{AdID: "ad1"},
		publishing.NewPublishError(publishing.ErrCreativeCreation, apiErrors.ErrAdCreation, publishing.StepAds, errors.New("timeout")))

	result := f.orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.False(t, result.Success)
	assert.Equal(t, []string{"ad1"}, result.AdIDs)
	assert.Empty(t, result.CreativeIDs)
	assert.Contains(t, result.Error, "creative creation failed (ad 0)")
}

func TestOrchestrator_PublishAds_PropagationTimeout(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(1)
	f.healthyAccount()
	f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).Return("c1", nil)
	f.integrator.EXPECT().GetCampaign(gomock.Any(), "c1").Return(nil, &metaclient.APIError{Code: 100, Subcode: 33}).Times(3)

	result := f.orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.False(t, result.Success)
	assert.Equal(t, "c1", result.CampaignID)
	assert.Empty(t, result.AdSetID)
	assert.Equal(t, apiErrors.ErrPropagationTimeout, result.ErrorCode)
}

func TestOrchestrator_PublishAds_ExistingModes(t *testing.T) {
	t.Run("new_adset usa a campanha existente sem esperar propagação", func(t *testing.T) {
		f := newFixture(t, "")
		f.pageValid()
		f.uploads(1)
		f.healthyAccount()
		f.builder.EXPECT().CreateAdSet(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.AdSetParams) (string, error) {
			assert.Equal(t, "existing-c", p.CampaignID)
			return "as1", nil
		})
		f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).Return(&publishing.AdRefs{AdID: "ad1", CreativeID: "cr1"}, nil)

		cfg := newConfig(1, domain.PublishModeNewAdSet)
		cfg.ExistingCampaignID = "existing-c"

		result := f.orchestrator.PublishAds(context.Background(), cfg)

		assert.True(t, result.Success)
		assert.Equal(t, "existing-c", result.CampaignID)
		assert.Equal(t, "as1", result.AdSetID)
	})

	t.Run("existing_adset só cria os anúncios", func(t *testing.T) {
		f := newFixture(t, "")
		f.pageValid()
		f.uploads(1)
		f.healthyAccount()
		f.builder.EXPECT().CreateCreativeAndAd(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p publishing.AdParams) (*publishing.AdRefs, error) {
			assert.Equal(t, "existing-as", p.AdSetID)
			return &publishing.AdRefs{AdID: "ad1", CreativeID: "cr1"}, nil
		})

		cfg := newConfig(1, domain.PublishModeExistingAdSet)
		cfg.ExistingAdSetID = "existing-as"

		result := f.orchestrator.PublishAds(context.Background(), cfg)

		assert.True(t, result.Success)
		assert.Equal(t, "existing-as", result.AdSetID)
		assert.Equal(t, []string{"ad1"}, result.AdIDs)
	})
}

func TestOrchestrator_PublishAds_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *domain.PublishConfig)
	}{
		{"sem anúncios", func(cfg *domain.PublishConfig) { cfg.Ads = nil }},
		{"new_adset sem campanha", func(cfg *domain.PublishConfig) { cfg.Mode = domain.PublishModeNewAdSet }},
		{"existing_adset sem conjunto", func(cfg *domain.PublishConfig) { cfg.Mode = domain.PublishModeExistingAdSet }},
		{"modo desconhecido", func(cfg *domain.PublishConfig) { cfg.Mode = "boost" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "")

			cfg := newConfig(1, domain.PublishModeNewCampaign)
			tt.mutate(cfg)

			result := f.orchestrator.PublishAds(context.Background(), cfg)

			assert.False(t, result.Success)
			assert.Equal(t, apiErrors.ErrPublishConfiguration, result.ErrorCode)
		})
	}
}

func TestOrchestrator_PublishAds_MissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := publishing.NewOrchestrator(
		&metaclient.Session{},
		validatingmocks.NewMockPageValidator(ctrl),
		uploadingmocks.NewMockImageUploader(ctrl),
		metamocks.NewMockIntegrator(ctrl),
		mocks.NewMockEntityBuilder(ctrl),
		fastPoller(1),
	)

	result := orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.False(t, result.Success)
	assert.Equal(t, apiErrors.ErrMetaNotConnected, result.ErrorCode)
	assert.Contains(t, result.Error, "ad account not configured")
}

func TestOrchestrator_PublishAds_RecoversFromPanic(t *testing.T) {
	f := newFixture(t, "")
	f.pageValid()
	f.uploads(1)
	f.healthyAccount()
	f.builder.EXPECT().CreateCampaign(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, publishing.CampaignParams) (string, error) {
		panic("unexpected nil")
	})

	result := f.orchestrator.PublishAds(context.Background(), newConfig(1, domain.PublishModeNewCampaign))

	assert.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, apiErrors.ErrInternalServer, result.ErrorCode)
	assert.Equal(t, []string{"h0"}, result.ImageHashes)
}
