package publishing

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
)

type AdParams struct {
	Name      string
	AdSetID   string
	PageID    string
	ImageHash string
	Headline  string
	Body      string
	LinkURL   string
	CTA       string
	PixelID   string
}

type AdRefs struct {
	AdID       string
	CreativeID string
}

// NormalizeCTA converte "Saiba mais"/"learn more" no formato LEARN_MORE
func NormalizeCTA(cta string) string {
	cta = strings.TrimSpace(cta)
	if cta == "" {
		return DefaultCTA
	}
	return strings.ToUpper(strings.Join(strings.Fields(cta), "_"))
}

// AdPayload monta o anúncio com o criativo de imagem única embutido (object_story_spec.link_data)
func AdPayload(params AdParams) map[string]any {
	linkData := map[string]any{
		"image_hash": params.ImageHash,
		"link":       params.LinkURL,
		"name":       params.Headline,
		"message":    params.Body,
		"call_to_action": map[string]any{
			"type":  NormalizeCTA(params.CTA),
			"value": map[string]any{"link": params.LinkURL},
		},
	}

	body := map[string]any{
		"name":     params.Name,
		"adset_id": params.AdSetID,
		"status":   StatusPaused,
		"creative": map[string]any{
			"name": params.Name + " - creative",
			"object_story_spec": map[string]any{
				"page_id":   params.PageID,
				"link_data": linkData,
			},
		},
	}

	if params.PixelID != "" {
		body["tracking_specs"] = []map[string]any{
			{
				"action.type": []string{"offsite_conversion"},
				"fb_pixel":    []string{params.PixelID},
			},
		}
	}

	return body
}

func (b *Builder) CreateCreativeAndAd(ctx context.Context, params AdParams) (*AdRefs, error) {
	accountID, err := b.client.Session().RequireAccount()
	if err != nil {
		return nil, NewPublishError(ErrAdCreation, apiErrors.ErrPublishConfiguration, StepAds, err)
	}

	var created metadomain.CreateResponse
	err = b.client.Request(ctx, metaclient.AccountPath(accountID)+"/ads", metaclient.RequestOptions{
		Method:      http.MethodPost,
		Body:        AdPayload(params),
		FormEncoded: true,
	}, &created)
	if err != nil {
		return nil, NewPublishError(ErrAdCreation, apiErrors.ErrAdCreation, StepAds, err)
	}
	if created.ID == "" {
		return nil, &PublishError{
			Err:     ErrAdCreation,
			Code:    apiErrors.ErrAdCreation,
			Step:    StepAds,
			AdIndex: -1,
			Details: "platform returned no ad id",
		}
	}

	var ad metadomain.AdWithCreative
	err = b.client.Request(ctx, created.ID, metaclient.RequestOptions{
		Method: http.MethodGet,
		Params: map[string]string{"fields": "creative{id}"},
	}, &ad)
	if err != nil {
		return &AdRefs{AdID: created.ID}, NewPublishError(ErrCreativeCreation, apiErrors.ErrAdCreation, StepAds, err)
	}
	if ad.Creative == nil || ad.Creative.ID == "" {
		return &AdRefs{AdID: created.ID}, &PublishError{
			Err:     ErrCreativeCreation,
			Code:    apiErrors.ErrAdCreation,
			Step:    StepAds,
			AdIndex: -1,
			Details: fmt.Sprintf("ad %s has no creative", created.ID),
		}
	}

	logrus.WithFields(logrus.Fields{
		"adset_id":    params.AdSetID,
		"ad_id":       created.ID,
		"creative_id": ad.Creative.ID,
	}).Info("publishing: ad created")

	return &AdRefs{AdID: created.ID, CreativeID: ad.Creative.ID}, nil
}
