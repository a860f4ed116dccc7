package domain

import (
	"time"
)

type InsightFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// CampaignType é a categoria fixa usada para agregar os resultados das campanhas
type CampaignType string

const (
	CampaignTypeSales     CampaignType = "sales"
	CampaignTypeTraffic   CampaignType = "traffic"
	CampaignTypeLeads     CampaignType = "leads"
	CampaignTypeAwareness CampaignType = "awareness"
)

// CampaignTypes define a ordem de apresentação das categorias
var CampaignTypes = []CampaignType{
	CampaignTypeSales,
	CampaignTypeTraffic,
	CampaignTypeLeads,
	CampaignTypeAwareness,
}

// CampaignInsightRow é uma linha de insights no nível de campanha já convertida para números
type CampaignInsightRow struct {
	CampaignID   string  `json:"campaign_id"`
	CampaignName string  `json:"campaign_name"`
	Objective    string  `json:"objective"`
	Spend        float64 `json:"spend"`
	Impressions  int     `json:"impressions"`
	Clicks       int     `json:"clicks"`
	Conversions  int     `json:"conversions"`
}

type TypeAggregate struct {
	Type              CampaignType `json:"type"`
	Campaigns         int          `json:"campaigns"`
	Spend             float64      `json:"spend"`
	Impressions       int          `json:"impressions"`
	Clicks            int          `json:"clicks"`
	Conversions       int          `json:"conversions"`
	CTR               float64      `json:"ctr"`
	CPC               float64      `json:"cpc"`
	CostPerConversion float64      `json:"cost_per_conversion"`
}

type InsightsByTypeResponse struct {
	AccountID string          `json:"account_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Types     []TypeAggregate `json:"types"`
}
