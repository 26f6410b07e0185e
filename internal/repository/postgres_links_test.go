package repository

import (
	"context"
	"testing"
	"time"

	"fleetlink-report/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresLinksRepo_GetByTokenHash(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLinksRepo(db)

	expiresAt := time.Now().Add(24 * time.Hour)
	createdAt := time.Now().Add(-time.Hour)

	mock.ExpectQuery(`SELECT\s+link_id`).
		WithArgs("hash-abc").
		WillReturnRows(sqlmock.NewRows([]string{
			"link_id", "driver_id", "company_id", "token_hash", "expires_at", "used_at", "created_at",
		}).AddRow("link-1", "driver-1", "company-1", "hash-abc", expiresAt, nil, createdAt))

	link, err := repo.GetByTokenHash(context.Background(), "hash-abc")
	require.NoError(t, err)
	assert.Equal(t, "link-1", link.LinkID)
	assert.Equal(t, "driver-1", link.DriverID)
	assert.Nil(t, link.UsedAt)
	assert.NoError(t, link.CheckConsumable(time.Now()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLinksRepo_GetByTokenHash_UsedAtScanned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLinksRepo(db)

	usedAt := time.Now().Add(-time.Minute)
	mock.ExpectQuery(`SELECT\s+link_id`).
		WithArgs("hash-used").
		WillReturnRows(sqlmock.NewRows([]string{
			"link_id", "driver_id", "company_id", "token_hash", "expires_at", "used_at", "created_at",
		}).AddRow("link-2", "driver-1", "company-1", "hash-used", time.Now().Add(time.Hour), usedAt, time.Now()))

	link, err := repo.GetByTokenHash(context.Background(), "hash-used")
	require.NoError(t, err)
	require.NotNil(t, link.UsedAt)
	assert.ErrorIs(t, link.CheckConsumable(time.Now()), domain.ErrLinkUsed)
}

func TestPostgresLinksRepo_GetByTokenHash_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLinksRepo(db)

	mock.ExpectQuery(`SELECT\s+link_id`).
		WithArgs("hash-missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"link_id", "driver_id", "company_id", "token_hash", "expires_at", "used_at", "created_at",
		}))

	_, err = repo.GetByTokenHash(context.Background(), "hash-missing")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestPostgresLinksRepo_GetByTokenHash_EmptyHash(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLinksRepo(db)
	_, err = repo.GetByTokenHash(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestPostgresLinksRepo_MarkUsed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresLinksRepo(db)

	at := time.Now()
	mock.ExpectExec(`UPDATE report_links`).
		WithArgs("link-1", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkUsed(context.Background(), "link-1", at))
	require.NoError(t, mock.ExpectationsWereMet())
}
