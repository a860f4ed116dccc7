package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/ad-publisher-api/internal/domain"
	"github.com/vfg2006/ad-publisher-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-publisher-api/pkg/apiErrors"
	"github.com/vfg2006/ad-publisher-api/pkg/log"
	"github.com/vfg2006/ad-publisher-api/pkg/utils"
)

func parseInsightFilters(r *http.Request) (*domain.InsightFilters, error) {
	since, err := utils.ParseDate(r.URL.Query().Get("since"))
	if err != nil {
		return nil, err
	}

	until, err := utils.ParseDate(r.URL.Query().Get("until"))
	if err != nil {
		return nil, err
	}

	return &domain.InsightFilters{StartDate: since, EndDate: until}, nil
}

// GetInsightsByType agrega os insights das campanhas da conta em vendas, tráfego, leads e reconhecimento
func GetInsightsByType(clients ClientFactory, usecases Usecases) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := parseInsightFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "dates must be in YYYY-MM-DD format", nil)
			return
		}

		since, until := insighting.DefaultPeriod(*filters.StartDate, *filters.EndDate, time.Now())

		client, ok := clientFor(w, r, clients)
		if !ok {
			return
		}

		accountID := strings.TrimPrefix(r.URL.Query().Get("account_id"), "act_")
		if accountID == "" {
			accountID = client.Session().Credentials.AdAccountID
		}
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "account_id is required", nil)
			return
		}

		response, err := usecases.Insighter(client).GetInsightsByType(r.Context(), accountID, since, until)
		if err != nil {
			if errors.Is(err, insighting.ErrInvalidPeriod) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
				return
			}

			logger.WithFields(log.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Error("insights: could not fetch insights by type")
			apiErrors.WriteError(w, apiErrors.ErrMetaRequest, "could not fetch insights", nil)
			return
		}

		writeJSON(w, http.StatusOK, response)
	})
}
