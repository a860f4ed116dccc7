package publishing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-publisher-api/infrastructure/imagesource"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/uploading"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

var errInternal = errors.New("internal error")

//go:generate mockgen -source=orchestrator.go -destination=mocks/orchestrator.go -package=mocks

type Publisher interface {
	PublishAds(ctx context.Context, cfg *domain.PublishConfig) *domain.PublishResult
}

// Orchestrator executa uma publicação completa: campanha, conjunto e um anúncio por imagem.
// Não desfaz nada na plataforma: o resultado parcial é devolvido e as entidades criadas continuam lá.
type Orchestrator struct {
	session    *metaclient.Session
	validator  validating.PageValidator
	uploader   uploading.ImageUploader
	integrator meta.Integrator
	builder    EntityBuilder
	poller     *PropagationPoller
	now        func() time.Time
}

func NewOrchestrator(
	session *metaclient.Session,
	validator validating.PageValidator,
	uploader uploading.ImageUploader,
	integrator meta.Integrator,
	builder EntityBuilder,
	poller *PropagationPoller,
) *Orchestrator {
	return &Orchestrator{
		session:    session,
		validator:  validator,
		uploader:   uploader,
		integrator: integrator,
		builder:    builder,
		poller:     poller,
		now:        time.Now,
	}
}

// NewFromClient monta o orquestrador com as implementações padrão sobre um único client
func NewFromClient(client metaclient.Client, source imagesource.Source, normalizer *imagesource.Normalizer, poller *PropagationPoller) *Orchestrator {
	integrator := meta.New(client)
	return NewOrchestrator(
		client.Session(),
		validating.NewService(integrator, client.Session()),
		uploading.NewService(client, source, normalizer),
		integrator,
		NewBuilder(client),
		poller,
	)
}

// ResolveObjective rebaixa vendas para tráfego quando não há pixel
func ResolveObjective(requested, pixelID string) string {
	if requested == "" {
		return domain.ObjectiveTraffic
	}
	if requested == domain.ObjectiveSales && pixelID == "" {
		logrus.WithField("requested", requested).Info("publishing: sales objective without pixel, using traffic")
		return domain.ObjectiveTraffic
	}
	return requested
}

// PublishAds nunca retorna erro nem propaga panic: toda falha vira Success=false com os ids já criados
func (o *Orchestrator) PublishAds(ctx context.Context, cfg *domain.PublishConfig) (result *domain.PublishResult) {
	result = domain.NewPublishResult()
	diagnostics := ""

	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("publishing: recovered from panic")
			o.fail(result, &PublishError{
				Err:     errInternal,
				Code:    apiErrors.ErrInternalServer,
				AdIndex: -1,
				Details: fmt.Sprint(r),
			}, diagnostics)
		}
	}()

	if cfg == nil {
		return o.fail(result, NewPublishError(ErrInvalidConfig, apiErrors.ErrPublishConfiguration, StepValidateConfig, errors.New("publish config is required")), "")
	}
	if err := cfg.Validate(); err != nil {
		return o.fail(result, NewPublishError(ErrInvalidConfig, apiErrors.ErrPublishConfiguration, StepValidateConfig, err), "")
	}

	accountID, err := o.session.RequireAccount()
	if err != nil {
		return o.fail(result, NewPublishError(ErrConfiguration, apiErrors.ErrMetaNotConnected, StepValidateConfig, err), "")
	}
	pageID, err := o.session.RequirePage()
	if err != nil {
		return o.fail(result, NewPublishError(ErrConfiguration, apiErrors.ErrMetaNotConnected, StepValidateConfig, err), "")
	}
	pixelID := o.session.PixelID()

	logger := logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"page_id":    pageID,
		"mode":       cfg.Mode,
		"ads":        len(cfg.Ads),
		"transport":  o.session.Transport,
	})
	logger.Info("publishing: starting publish")

	// página: apenas aviso, as chamadas de criação revalidam
	if validation := o.validator.Validate(ctx, pageID); !validation.Valid {
		warning := fmt.Sprintf("%s: %s", ErrPageAccess, validation.Error)
		if validation.Diagnosis != "" {
			warning = fmt.Sprintf("%s. %s", warning, validation.Diagnosis)
		}
		result.Warnings = append(result.Warnings, warning)
		logger.WithFields(logrus.Fields{
			"step":    StepValidatePage,
			"warning": warning,
		}).Warn("publishing: page access not confirmed, continuing")
	}

	for i, ad := range cfg.Ads {
		if err := ctx.Err(); err != nil {
			return o.fail(result, NewAdPublishError(ErrUpload, apiErrors.ErrImageUpload, StepUploadImages, i, err), "")
		}

		hash, err := o.uploader.Upload(ctx, ad.Image)
		if err != nil {
			return o.fail(result, NewAdPublishError(ErrUpload, apiErrors.ErrImageUpload, StepUploadImages, i, err), "")
		}
		result.ImageHashes = append(result.ImageHashes, hash)
	}

	diagnostics, account := o.diagnose(ctx, accountID)
	if account != nil && !account.IsActive() {
		pubErr := NewPublishError(ErrAccountInactive, apiErrors.ErrAccountInactive, StepAccountHealth, nil)
		pubErr.Details = fmt.Sprintf("status %s (%d)", account.StatusName(), account.AccountStatus)
		return o.fail(result, pubErr, diagnostics)
	}

	objective := ResolveObjective(cfg.Settings.Objective, pixelID)
	optimization := cfg.Settings.Optimization
	if cfg.Settings.Objective == domain.ObjectiveSales && objective != domain.ObjectiveSales {
		// vendas rebaixadas para tráfego sempre otimizam para cliques
		optimization = domain.OptimizationClicks
	}

	switch cfg.Mode {
	case domain.PublishModeNewCampaign:
		campaignID, err := o.builder.CreateCampaign(ctx, CampaignParams{
			Name:        o.nameOr(cfg.Settings.CampaignName, "Campaign"),
			Objective:   objective,
			BudgetMode:  cfg.Settings.BudgetMode,
			DailyBudget: cfg.Settings.DailyBudget,
		})
		if err != nil {
			return o.fail(result, err, diagnostics)
		}
		result.CampaignID = campaignID

		err = o.poller.WaitVisible(ctx, func(ctx context.Context) error {
			_, err := o.integrator.GetCampaign(ctx, campaignID)
			return err
		})
		if err != nil {
			return o.fail(result, NewPublishError(err, apiErrors.ErrPropagationTimeout, StepPropagation, nil), diagnostics)
		}
	case domain.PublishModeNewAdSet:
		result.CampaignID = cfg.ExistingCampaignID
	case domain.PublishModeExistingAdSet:
		result.CampaignID = cfg.ExistingCampaignID
		result.AdSetID = cfg.ExistingAdSetID
	}

	if cfg.Mode != domain.PublishModeExistingAdSet {
		var promoted *PromotedObject
		if o.session.Credentials.HasPixel() && objective == domain.ObjectiveSales {
			promoted = &PromotedObject{PixelID: pixelID, CustomEventType: cfg.Settings.PixelEventType}
		}

		adSetID, err := o.builder.CreateAdSet(ctx, AdSetParams{
			Name:           o.nameOr(cfg.Settings.AdSetName, "Ad set"),
			CampaignID:     result.CampaignID,
			Objective:      objective,
			BudgetMode:     cfg.Settings.BudgetMode,
			DailyBudget:    cfg.Settings.DailyBudget,
			Optimization:   optimization,
			Targeting:      cfg.Settings.Targeting,
			Placements:     cfg.Settings.Placements,
			PromotedObject: promoted,
		})
		if err != nil {
			return o.fail(result, err, diagnostics)
		}
		result.AdSetID = adSetID
	}

	prefix := cfg.Settings.AdNamePrefix
	if prefix == "" {
		prefix = "Ad"
	}

	for i, ad := range cfg.Ads {
		if err := ctx.Err(); err != nil {
			return o.fail(result, NewAdPublishError(ErrAdCreation, apiErrors.ErrAdCreation, StepAds, i, err), diagnostics)
		}

		refs, err := o.builder.CreateCreativeAndAd(ctx, AdParams{
			Name:      fmt.Sprintf("%s %d", prefix, i+1),
			AdSetID:   result.AdSetID,
			PageID:    pageID,
			ImageHash: result.ImageHashes[i],
			Headline:  ad.Headline,
			Body:      ad.Body,
			LinkURL:   cfg.LinkFor(ad),
			CTA:       ad.CTA,
			PixelID:   pixelID,
		})
		if err != nil {
			// anúncio criado sem criativo confirmado continua registrado para rastreio
			if refs != nil && refs.AdID != "" {
				result.AdIDs = append(result.AdIDs, refs.AdID)
			}
			var pubErr *PublishError
			if errors.As(err, &pubErr) {
				pubErr.AdIndex = i
			}
			return o.fail(result, err, diagnostics)
		}

		result.AdIDs = append(result.AdIDs, refs.AdID)
		result.CreativeIDs = append(result.CreativeIDs, refs.CreativeID)
	}

	result.Success = true
	logger.WithFields(logrus.Fields{
		"campaign_id": result.CampaignID,
		"adset_id":    result.AdSetID,
		"ad_ids":      result.AdIDs,
	}).Info("publishing: publish finished")

	return result
}

// diagnose coleta status da conta e escopos do token só para depuração.
// A conta retornada é nil quando não foi possível lê-la.
func (o *Orchestrator) diagnose(ctx context.Context, accountID string) (string, *metadomain.AdAccount) {
	parts := make([]string, 0, 2)

	account, err := o.integrator.GetAdAccount(ctx, accountID)
	if err != nil {
		parts = append(parts, fmt.Sprintf("account: unavailable (%v)", err))
		account = nil
	} else {
		parts = append(parts, fmt.Sprintf("account: %s status=%s(%d) currency=%s disable_reason=%d",
			account.Name, account.StatusName(), account.AccountStatus, account.Currency, account.DisableReason))
	}

	permissions, err := o.integrator.GetPermissions(ctx)
	if err != nil {
		parts = append(parts, fmt.Sprintf("token scopes: unavailable (%v)", err))
	} else {
		parts = append(parts, "token scopes: "+strings.Join(permissions.Granted(), ","))
	}

	return strings.Join(parts, "; "), account
}

func (o *Orchestrator) fail(result *domain.PublishResult, err error, diagnostics string) *domain.PublishResult {
	result.Success = false
	result.Error = err.Error()
	result.ErrorCode = codeFor(err)

	details := make([]string, 0, 2)
	if apiErr, ok := metaclient.AsAPIError(err); ok {
		detail := fmt.Sprintf("meta error code=%d subcode=%d", apiErr.Code, apiErr.Subcode)
		if apiErr.FBTraceID != "" {
			detail += " fbtrace_id=" + apiErr.FBTraceID
		}
		if apiErr.UserTitle != "" {
			detail += " title=" + apiErr.UserTitle
		}
		details = append(details, detail)
	}
	if diagnostics != "" {
		details = append(details, diagnostics)
	}
	result.Details = strings.Join(details, "\n")

	fields := logrus.Fields{
		"error":       result.Error,
		"code":        result.ErrorCode,
		"campaign_id": result.CampaignID,
		"adset_id":    result.AdSetID,
		"ad_ids":      result.AdIDs,
	}
	var pubErr *PublishError
	if errors.As(err, &pubErr) {
		fields["step"] = pubErr.Step
		fields["ad_index"] = pubErr.AdIndex
	}
	logrus.WithFields(fields).Error("publishing: publish failed, created entities are kept")

	return result
}

func (o *Orchestrator) nameOr(name, kind string) string {
	if strings.TrimSpace(name) != "" {
		return name
	}
	return fmt.Sprintf("%s %s", kind, o.now().Format("2006-01-02 15:04"))
}
