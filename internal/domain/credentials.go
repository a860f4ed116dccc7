package domain

// Credentials representa as credenciais de marketing de uma organização.
// São carregadas uma vez por sessão e nunca alteradas pelo núcleo de publicação.
type Credentials struct {
	AdAccountID       string   `json:"ad_account_id"`
	PageID            string   `json:"page_id"`
	PixelID           string   `json:"pixel_id"`
	Connected         bool     `json:"connected"`
	AvailableAccounts []string `json:"available_accounts"`
	AvailablePages    []string `json:"available_pages"`
}

// HasPixel indica se existe uma referência de conversão configurada
func (c *Credentials) HasPixel() bool {
	return c != nil && c.PixelID != ""
}

// OrganizationCredentials é o registro persistido de uma organização, incluindo o token real da plataforma
type OrganizationCredentials struct {
	OrganizationID string `json:"organization_id"`
	AccessToken    string `json:"access_token"`
	Credentials
}
