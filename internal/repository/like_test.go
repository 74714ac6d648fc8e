package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_SubjectLikeExists(t *testing.T) {
	t.Run("row present", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewLikeRepository(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "subject_likes"`)).
			WithArgs(uint(1), uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.SubjectLikeExists(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row absent", func(t *testing.T) {
		gormDB, mock := setupMockDB(t)
		repo := NewLikeRepository(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "subject_likes"`)).
			WithArgs(uint(1), uint(7)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.SubjectLikeExists(context.Background(), 1, 7)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLikeRepository_InsertSubjectLike_ConflictSafe(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewLikeRepository(gormDB)

	insert := regexp.QuoteMeta(`INSERT INTO subject_likes`)

	mock.ExpectExec(insert).
		WithArgs(uint(1), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.InsertSubjectLike(context.Background(), 1, 7))

	// A concurrent toggle already inserted the pair: zero rows affected,
	// still no error.
	mock.ExpectExec(insert).
		WithArgs(uint(1), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.InsertSubjectLike(context.Background(), 1, 7))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_DeleteSubjectLike(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewLikeRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "subject_likes"`)).
		WithArgs(uint(1), uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteSubjectLike(context.Background(), 1, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_CountSubjectLikes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewLikeRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "subject_likes"`)).
		WithArgs(uint(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSubjectLikes(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_InsertCommentLike_CarriesLevel(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewLikeRepository(gormDB)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO comment_likes`)).
		WithArgs(uint(1), uint(4), uint(7), true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertCommentLike(context.Background(), 1, 7, 4, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepository_DeleteCommentLike(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewLikeRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "comment_likes"`)).
		WithArgs(uint(1), uint(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCommentLike(context.Background(), 1, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
