package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/ad-publisher-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

const credentialsTable = "organization_meta_credentials"

//go:generate mockgen -source=credentials.go -destination=mocks/credentials.go -package=mocks

// CredentialsRepository só lê: o registro é mantido pelo fluxo de conexão da organização
type CredentialsRepository interface {
	GetByOrganizationID(ctx context.Context, organizationID string) (*domain.OrganizationCredentials, error)
}

type credentialsRepository struct {
	conn postgres.Queryer
}

func NewCredentialsRepository(conn postgres.Queryer) CredentialsRepository {
	return &credentialsRepository{
		conn: conn,
	}
}

// GetByOrganizationID retorna nil, nil quando a organização não tem credenciais
func (r *credentialsRepository) GetByOrganizationID(ctx context.Context, organizationID string) (*domain.OrganizationCredentials, error) {
	query, args, err := squirrel.
		Select("organization_id, access_token, ad_account_id, page_id, pixel_id, connected, available_accounts, available_pages").
		From(credentialsTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build credentials query")
	}

	creds := &domain.OrganizationCredentials{}
	var pixelID sql.NullString

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&creds.OrganizationID,
		&creds.AccessToken,
		&creds.AdAccountID,
		&creds.PageID,
		&pixelID,
		&creds.Connected,
		pq.Array(&creds.AvailableAccounts),
		pq.Array(&creds.AvailablePages),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "get credentials of organization %s", organizationID)
	}

	creds.PixelID = pixelID.String

	return creds, nil
}
