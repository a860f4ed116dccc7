package insighting

import (
	"context"
	"time"

	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/interfaces.go -package=mocks

// Insighter define os auxiliares de leitura de resultados das campanhas
type Insighter interface {
	// FetchCampaignInsights obtém as linhas de insights por campanha no período
	FetchCampaignInsights(ctx context.Context, accountID string, since, until time.Time) ([]domain.CampaignInsightRow, error)

	// GetInsightsByType agrega os insights do período nas quatro categorias fixas
	GetInsightsByType(ctx context.Context, accountID string, since, until time.Time) (*domain.InsightsByTypeResponse, error)
}
