package handler

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
)

const maxPublishBody = 64 << 20

type PublishResponse struct {
	RunID string `json:"run_id,omitempty"`
	*domain.PublishResult
}

func PublishAds(clients ClientFactory, usecases Usecases, runs repository.PublishRunRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r)
		logger := log.ForContext(r.Context()).WithField("organization_id", claims.OrganizationID)

		var cfg domain.PublishConfig
		if err := json.NewDecoder(io.LimitReader(r.Body, maxPublishBody)).Decode(&cfg); err != nil {
			logger.WithError(err).Warn("publish: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid publish config", nil)
			return
		}

		client, ok := clientFor(w, r, clients)
		if !ok {
			return
		}

		result := usecases.Publisher(client).PublishAds(r.Context(), &cfg)

		run := &domain.PublishRun{
			OrganizationID: claims.OrganizationID,
			Mode:           cfg.Mode,
			Result:         result,
		}
		// o resultado já existe na plataforma, falha ao registrar não muda a resposta
		if err := runs.Save(r.Context(), run); err != nil {
			logger.WithError(err).Error("publish: could not save publish run")
		}

		status := http.StatusOK
		if !result.Success {
			status = apiErrors.StatusFor(result.ErrorCode)
		}

		writeJSON(w, status, PublishResponse{RunID: run.ID, PublishResult: result})
	})
}

func GetPublishRun(runs repository.PublishRunRepository) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		organizationID := claimsFrom(r).OrganizationID

		run, err := runs.GetByID(r.Context(), organizationID, id)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"run_id": id,
				"error":  err.Error(),
			}).Error("publish: could not load publish run")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not load publish run", nil)
			return
		}
		if run == nil {
			apiErrors.WriteError(w, apiErrors.ErrPublishRunNotFound, "publish run not found", nil)
			return
		}

		writeJSON(w, http.StatusOK, run)
	})
}
