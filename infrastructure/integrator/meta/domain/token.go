package metadomain

type Permission struct {
	Permission string `json:"permission"`
	Status     string `json:"status"`
}

type PermissionsResponse struct {
	Data []Permission `json:"data"`
}

// Granted retorna as permissões concedidas ao token
func (r *PermissionsResponse) Granted() []string {
	granted := make([]string, 0, len(r.Data))
	for _, p := range r.Data {
		if p.Status == "granted" {
			granted = append(granted, p.Permission)
		}
	}
	return granted
}

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
