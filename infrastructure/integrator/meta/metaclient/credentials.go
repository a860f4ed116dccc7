package metaclient

import (
	"fmt"
	"strings"

	"github.com/vfg2006/ad-publisher-api/internal/config"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

type TransportKind string

const (
	TransportProxy  TransportKind = "proxy"
	TransportDirect TransportKind = "direct"
)

// Session é o resultado da resolução de credenciais de uma execução
type Session struct {
	Transport   TransportKind
	BearerToken string
	AccessToken string
	Credentials domain.Credentials
}

// RequireAccount devolve o id da conta de anúncios ou ErrConfiguration
func (s *Session) RequireAccount() (string, error) {
	if strings.TrimSpace(s.Credentials.AdAccountID) == "" {
		return "", fmt.Errorf("%w: ad account not configured", ErrConfiguration)
	}
	return s.Credentials.AdAccountID, nil
}

// RequirePage devolve o id da página ou ErrConfiguration
func (s *Session) RequirePage() (string, error) {
	if strings.TrimSpace(s.Credentials.PageID) == "" {
		return "", fmt.Errorf("%w: facebook page not configured", ErrConfiguration)
	}
	return s.Credentials.PageID, nil
}

func (s *Session) PixelID() string {
	return s.Credentials.PixelID
}

// CredentialResolver decide o transporte e as credenciais de cada execução
type CredentialResolver struct {
	static      domain.Credentials
	accessToken string
}

func NewCredentialResolver(cfg config.Meta) *CredentialResolver {
	return &CredentialResolver{
		static: domain.Credentials{
			AdAccountID: cfg.AdAccountID,
			PageID:      cfg.PageID,
			PixelID:     cfg.PixelID,
			Connected:   cfg.AdAccountID != "" && cfg.AccessToken != "",
		},
		accessToken: cfg.AccessToken,
	}
}

// Resolve nunca falha: a falta de conta, página ou token só aparece no primeiro uso.
// Com bearer usa o proxy e as credenciais da organização recebidas (sem nova busca);
// sem bearer cai no modo direto com as credenciais estáticas.
func (r *CredentialResolver) Resolve(bearerToken string, org *domain.Credentials) *Session {
	if bearerToken != "" {
		session := &Session{
			Transport:   TransportProxy,
			BearerToken: bearerToken,
		}
		if org != nil {
			session.Credentials = *org
		}
		return session
	}

	return &Session{
		Transport:   TransportDirect,
		AccessToken: r.accessToken,
		Credentials: r.static,
	}
}

// OrganizationSession monta a sessão usada pelo backend, que fala direto com a plataforma
// usando o token guardado da organização
func OrganizationSession(org *domain.OrganizationCredentials) *Session {
	return &Session{
		Transport:   TransportDirect,
		AccessToken: org.AccessToken,
		Credentials: org.Credentials,
	}
}

// AccountPath devolve o nó da conta de anúncios no formato act_{id}
func AccountPath(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}
