package domain

import "time"

// PublishRun registra o resultado de uma publicação, inclusive entidades que ficaram órfãs na plataforma
type PublishRun struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Mode           PublishMode    `json:"mode"`
	Result         *PublishResult `json:"result"`
	CreatedAt      time.Time      `json:"created_at"`
}
