package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/vfg2006/ad-publisher-api/infrastructure/cache"
	"github.com/vfg2006/ad-publisher-api/infrastructure/imagesource"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/publishing"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/validating"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
	"github.com/vfg2006/ad-publisher-api/pkg/middleware"
)

var ErrNotConnected = errors.New("organization has no connected meta credentials")

// ClientFactory monta o client da plataforma com as credenciais da organização autenticada
type ClientFactory interface {
	ForOrganization(ctx context.Context, organizationID string) (metaclient.Client, error)
}

type OrganizationClients struct {
	credentials cache.CredentialsProvider
	cfg         *config.Config
}

func NewOrganizationClients(credentials cache.CredentialsProvider, cfg *config.Config) *OrganizationClients {
	return &OrganizationClients{
		credentials: credentials,
		cfg:         cfg,
	}
}

// ForOrganization usa o transporte direto: no servidor o token real da organização fica do lado de cá
func (o *OrganizationClients) ForOrganization(ctx context.Context, organizationID string) (metaclient.Client, error) {
	creds, err := o.credentials.Get(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	if creds == nil || !creds.Connected || creds.AccessToken == "" {
		return nil, ErrNotConnected
	}

	return metaclient.NewClient(metaclient.OrganizationSession(creds), o.cfg, nil), nil
}

// Usecases monta os casos de uso sobre o client de cada requisição
type Usecases struct {
	Publisher func(client metaclient.Client) publishing.Publisher
	Validator func(client metaclient.Client) validating.PageValidator
	Insighter func(client metaclient.Client) insighting.Insighter
}

func NewUsecases(cfg *config.Config, source imagesource.Source, normalizer *imagesource.Normalizer) Usecases {
	poller := publishing.NewPropagationPoller(cfg.Publish)

	return Usecases{
		Publisher: func(client metaclient.Client) publishing.Publisher {
			return publishing.NewFromClient(client, source, normalizer, poller)
		},
		Validator: func(client metaclient.Client) validating.PageValidator {
			return validating.NewService(meta.New(client), client.Session())
		},
		Insighter: func(client metaclient.Client) insighting.Insighter {
			return insighting.NewService(meta.New(client))
		},
	}
}

func claimsFrom(r *http.Request) *domain.Claims {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return &domain.Claims{}
	}
	return claims
}

// clientFor resolve o client da organização ou escreve o erro na resposta
func clientFor(w http.ResponseWriter, r *http.Request, clients ClientFactory) (metaclient.Client, bool) {
	organizationID := claimsFrom(r).OrganizationID

	client, err := clients.ForOrganization(r.Context(), organizationID)
	if err != nil {
		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"organization_id": organizationID,
			"error":           err.Error(),
		})

		if errors.Is(err, ErrNotConnected) {
			logger.Warn("organization: meta not connected")
			apiErrors.WriteError(w, apiErrors.ErrMetaNotConnected, err.Error(), nil)
			return nil, false
		}

		logger.Error("organization: could not load credentials")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not load organization credentials", nil)
		return nil, false
	}

	return client, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Warn("http: error encoding response")
	}
}
