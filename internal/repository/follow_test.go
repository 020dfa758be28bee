package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"microsns/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "follows"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.Create(ctx, 1, 2)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Follow Is A Conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "follows"`)).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_follow_pair" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, 1, 2)
		require.Error(t, err)
		appErr := models.AsAppError(err)
		assert.Equal(t, "CONFLICT", appErr.Code)
		assert.Equal(t, "Already following", appErr.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFollowRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		affected, err := repo.Delete(ctx, 1, 2)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Edge To Remove", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
			WithArgs(1, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		affected, err := repo.Delete(ctx, 1, 99)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFollowRepository_Following(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"user_id", "name", "email", "followed_at"}).
		AddRow(2, "bob", "bob@example.com", now).
		AddRow(3, "carol", "carol@example.com", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT users.id AS user_id, users.name, users.email, follows.followed_at FROM "follows" JOIN users ON users.id = follows.following_id WHERE follows.follower_id = $1 ORDER BY follows.followed_at DESC`)).
		WithArgs(1).
		WillReturnRows(rows)

	entries, err := repo.Following(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(2), entries[0].UserID)
	assert.Equal(t, "bob", entries[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Followers(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"user_id", "name", "email", "followed_at"}).
		AddRow(4, "dave", "dave@example.com", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users ON users.id = follows.follower_id WHERE follows.following_id = $1 ORDER BY follows.followed_at DESC`)).
		WithArgs(1).
		WillReturnRows(rows)

	entries, err := repo.Followers(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "dave", entries[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE follower_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE following_id = $1`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	counts, err := repo.Counts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.FollowingCount)
	assert.Equal(t, int64(5), counts.FollowerCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
