package handler

import (
	"net/http"

	"github.com/vfg2006/ad-publisher-api/infrastructure/cache"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
)

// GetCredentials devolve as credenciais de marketing da organização sem o token da plataforma
func GetCredentials(credentials cache.CredentialsProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		organizationID := claimsFrom(r).OrganizationID
		logger := log.ForContext(r.Context()).WithFields(log.Fields{
			"organization_id": organizationID,
		})

		creds, err := credentials.Get(r.Context(), organizationID)
		if err != nil {
			logger.WithField("error", err.Error()).Error("credentials: could not load")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not load organization credentials", nil)
			return
		}
		if creds == nil || !creds.Connected {
			logger.Warn("credentials: meta not connected")
			apiErrors.WriteError(w, apiErrors.ErrMetaNotConnected, ErrNotConnected.Error(), nil)
			return
		}

		writeJSON(w, http.StatusOK, creds.Credentials)
	})
}

// InvalidateCredentials descarta as credenciais em cache depois de reconectar a plataforma
func InvalidateCredentials(credentials cache.CredentialsProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		organizationID := claimsFrom(r).OrganizationID

		if err := credentials.Invalidate(r.Context(), organizationID); err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"organization_id": organizationID,
				"error":           err.Error(),
			}).Error("credentials: could not invalidate cache")
			apiErrors.WriteError(w, apiErrors.ErrExternalService, "could not invalidate credentials cache", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
