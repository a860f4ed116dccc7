package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-publisher-api/internal/domain"
)

const credentialsQuery = "SELECT organization_id, access_token, ad_account_id, page_id, pixel_id, connected, available_accounts, available_pages FROM organization_meta_credentials WHERE organization_id = $1"

var credentialsColumns = []string{
	"organization_id", "access_token", "ad_account_id", "page_id", "pixel_id", "connected", "available_accounts", "available_pages",
}

func TestCredentialsRepository_GetByOrganizationID(t *testing.T) {
	t.Run("lê as credenciais da organização", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(credentialsQuery)).
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows(credentialsColumns).
				AddRow("org-1", "token", "123", "p1", nil, true, "{123,456}", "{p1}"))

		creds, err := NewCredentialsRepository(db).GetByOrganizationID(context.Background(), "org-1")

		require.NoError(t, err)
		assert.Equal(t, &domain.OrganizationCredentials{
			OrganizationID: "org-1",
			AccessToken:    "token",
			Credentials: domain.Credentials{
				AdAccountID:       "123",
				PageID:            "p1",
				Connected:         true,
				AvailableAccounts: []string{"123", "456"},
				AvailablePages:    []string{"p1"},
			},
		}, creds)
		assert.False(t, creds.HasPixel())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("organização sem credenciais", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(credentialsQuery)).
			WithArgs("org-2").
			WillReturnRows(sqlmock.NewRows(credentialsColumns))

		creds, err := NewCredentialsRepository(db).GetByOrganizationID(context.Background(), "org-2")

		assert.NoError(t, err)
		assert.Nil(t, creds)
	})

	t.Run("erro do banco", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(regexp.QuoteMeta(credentialsQuery)).WillReturnError(dbErr)

		creds, err := NewCredentialsRepository(db).GetByOrganizationID(context.Background(), "org-3")

		assert.Nil(t, creds)
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "get credentials of organization org-3")
	})
}
