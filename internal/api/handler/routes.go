package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ad-publisher-api/infrastructure/cache"
	"github.com/vfg2006/ad-publisher-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ad-publisher-api/infrastructure/repository"
	"github.com/vfg2006/ad-publisher-api/internal/api/handler/router"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// MetaProxy são as rotas usadas pelo ProxyTransport do client
func MetaProxy(clients ClientFactory) []router.Route {
	return []router.Route{
		{
			Path:    metaclient.ProxyRequestPath,
			Method:  http.MethodPost,
			Handler: ProxyMetaRequest(clients),
		},
		{
			Path:    metaclient.ProxyUploadPath,
			Method:  http.MethodPost,
			Handler: ProxyMetaUpload(clients),
		},
	}
}

func Publishing(clients ClientFactory, usecases Usecases, runs repository.PublishRunRepository) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/ads/publish",
			Method:  http.MethodPost,
			Handler: PublishAds(clients, usecases, runs),
		},
		{
			Path:    "/v1/publish-runs/:id",
			Method:  http.MethodGet,
			Handler: GetPublishRun(runs),
		},
		{
			Path:    "/v1/pages/:id/validate",
			Method:  http.MethodGet,
			Handler: ValidatePage(clients, usecases),
		},
	}
}

func Insights(clients ClientFactory, usecases Usecases) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insights/by-type",
			Method:  http.MethodGet,
			Handler: GetInsightsByType(clients, usecases),
		},
	}
}

func Credentials(credentials cache.CredentialsProvider) []router.Route {
	return []router.Route{
		{
			Path:    metaclient.ProxyCredentialsPath,
			Method:  http.MethodGet,
			Handler: GetCredentials(credentials),
		},
		{
			Path:    "/v1/credentials/cache",
			Method:  http.MethodDelete,
			Handler: InvalidateCredentials(credentials),
		},
	}
}
