package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"devlink/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProfileRepository_GetByUserID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	t.Run("Not Found returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE user_id = $1`)).
			WithArgs(42, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		profile, err := repo.GetByUserID(ctx, 42)
		assert.NoError(t, err)
		assert.Nil(t, profile)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success preloads children", func(t *testing.T) {
		mock.MatchExpectationsInOrder(false)

		profileRows := sqlmock.NewRows([]string{"id", "user_id", "status"}).
			AddRow(3, 42, "Developer")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE user_id = $1`)).
			WithArgs(42, 1).
			WillReturnRows(profileRows)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "educations" WHERE "educations"."profile_id" = $1 ORDER BY created_at DESC`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id", "school"}))

		expRows := sqlmock.NewRows([]string{"id", "profile_id", "title", "company"}).
			AddRow("e1", 3, "Engineer", "Acme")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "experiences" WHERE "experiences"."profile_id" = $1 ORDER BY created_at DESC`)).
			WithArgs(3).
			WillReturnRows(expRows)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(42, "Ada Lovelace"))

		profile, err := repo.GetByUserID(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "Developer", profile.Status)
		assert.Len(t, profile.Experience, 1)
		assert.Equal(t, "Acme", profile.Experience[0].Company)
		assert.Equal(t, "Ada Lovelace", profile.User.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_GetByUserID_CacheRoundTrip(t *testing.T) {
	db, mock := setupMockDB(t)
	setupCacheRedis(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	expectProfileFetch := func() {
		mock.MatchExpectationsInOrder(false)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE user_id = $1`)).
			WithArgs(42, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "status"}).AddRow(3, 42, "Developer"))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "educations" WHERE "educations"."profile_id" = $1`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id"}))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "experiences" WHERE "experiences"."profile_id" = $1`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "profile_id"}))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
			WithArgs(42).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(42, "Ada Lovelace"))
	}

	expectProfileFetch()
	first, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The repeat read is served from the cache without touching the DB.
	second, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.Status, second.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	// Adding an entry invalidates the cached profile for its owner.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "experiences"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, repo.AddExperience(ctx, first, &models.Experience{
		ProfileID: first.ID,
		Title:     "Engineer",
		Company:   "Acme",
		From:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	expectProfileFetch()
	third, err := repo.GetByUserID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, third)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_RemoveExperience(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	owner := &models.Profile{ID: 3, UserID: 42}

	t.Run("Removes matching row", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "experiences" WHERE profile_id = $1 AND id = $2`)).
			WithArgs(3, "e1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		rows, err := repo.RemoveExperience(ctx, owner, "e1")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), rows)
	})

	t.Run("Unknown entry removes nothing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "experiences" WHERE profile_id = $1 AND id = $2`)).
			WithArgs(3, "nope").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		rows, err := repo.RemoveExperience(ctx, owner, "nope")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_DeleteAccount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "posts" WHERE user_id = $1`)).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE post_id IN ($1)`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE user_id = $1`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "profiles" WHERE user_id = $1`)).
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(3, 42))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "experiences" WHERE profile_id = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "educations" WHERE profile_id = $1`)).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "profiles" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET "deleted_at"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteAccount(ctx, 42)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Create_Conflict(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "profiles"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_profiles_user_id" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	err := repo.Create(ctx, &models.Profile{UserID: 42, Status: "Developer"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
