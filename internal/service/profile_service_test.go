package service

import (
	"context"
	"testing"

	"ottify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileService(
	userRepo *userRepoStub,
	genreRepo *genreRepoStub,
	ottRepo *ottRepoStub,
	subjectRepo *subjectRepoStub,
	commentRepo *commentRepoStub,
	reviewRepo *reviewRepoStub,
	programRepo *programRepoStub,
) *ProfileService {
	return NewProfileService(userRepo, genreRepo, ottRepo, subjectRepo, commentRepo, reviewRepo, programRepo)
}

func TestProfileService_GetProfile(t *testing.T) {
	t.Parallel()

	t.Run("missing first genre fails the whole profile", func(t *testing.T) {
		t.Parallel()
		genreRepo := noopGenreRepo()
		genreRepo.firstByUserFn = func(_ context.Context, userID uint) (*models.UserGenre, error) {
			return nil, models.NewNotFoundError("UserGenre", userID)
		}
		svc := newProfileService(noopUserRepo(), genreRepo, noopOttRepo(),
			noopSubjectRepo(), noopCommentRepo(), noopReviewRepo(), noopProgramRepo())
		_, err := svc.GetProfile(context.Background(), 1)
		assertNotFoundError(t, err)
	})

	t.Run("assembles genres, otts, and histogram", func(t *testing.T) {
		t.Parallel()
		genreRepo := noopGenreRepo()
		genreRepo.secondByUserFn = func(_ context.Context, _ uint) ([]*models.UserGenre, error) {
			return []*models.UserGenre{
				{GenreID: 2, Genre: models.Genre{ID: 2, Name: "Thriller"}},
				{GenreID: 3, Genre: models.Genre{ID: 3, Name: "Comedy"}},
			}, nil
		}
		ottRepo := noopOttRepo()
		ottRepo.listByUserFn = func(_ context.Context, _ uint) ([]*models.UserOtt, error) {
			return []*models.UserOtt{
				{OttID: 1, Ott: models.Ott{ID: 1, Name: "Netflix"}},
			}, nil
		}
		reviewRepo := noopReviewRepo()
		reviewRepo.ratingsByUserFn = func(_ context.Context, _ uint) ([]float64, error) {
			return []float64{4.5, 4.5, 3.0}, nil
		}

		svc := newProfileService(noopUserRepo(), genreRepo, ottRepo,
			noopSubjectRepo(), noopCommentRepo(), reviewRepo, noopProgramRepo())
		profile, err := svc.GetProfile(context.Background(), 1)
		require.NoError(t, err)

		assert.Equal(t, "Drama", profile.FirstGenre.Name)
		require.Len(t, profile.SecondGenres, 2)
		require.Len(t, profile.Otts, 1)
		assert.Equal(t, "Netflix", profile.Otts[0].Name)
		assert.Equal(t, 3, profile.ReviewCount)

		// Every 0.5-step bucket from 0.5 to 5.0 is present.
		require.Len(t, profile.Ratings, 10)
		byRating := make(map[float64]int, len(profile.Ratings))
		for _, b := range profile.Ratings {
			byRating[b.Rating] = b.Count
		}
		assert.Equal(t, 2, byRating[4.5])
		assert.Equal(t, 1, byRating[3.0])
		assert.Equal(t, 0, byRating[0.5])
		assert.Equal(t, 0, byRating[5.0])
	})
}

func TestBuildRatingHistogram_AllBucketsPresent(t *testing.T) {
	t.Parallel()

	buckets := buildRatingHistogram(nil)
	require.Len(t, buckets, 10)
	assert.Equal(t, 0.5, buckets[0].Rating)
	assert.Equal(t, 5.0, buckets[len(buckets)-1].Rating)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestProfileService_MySubjects_SlicePagination(t *testing.T) {
	t.Parallel()

	makeSubjects := func(n int) []*models.Subject {
		out := make([]*models.Subject, n)
		for i := range out {
			out[i] = &models.Subject{ID: uint(i + 1)}
		}
		return out
	}

	t.Run("full page plus one means more pages exist", func(t *testing.T) {
		t.Parallel()
		subjectRepo := noopSubjectRepo()
		var gotLimit int
		subjectRepo.listByUserFn = func(_ context.Context, _ uint, limit, _ int) ([]*models.Subject, error) {
			gotLimit = limit
			return makeSubjects(limit), nil
		}
		svc := newProfileService(noopUserRepo(), noopGenreRepo(), noopOttRepo(),
			subjectRepo, noopCommentRepo(), noopReviewRepo(), noopProgramRepo())

		slice, err := svc.MySubjects(context.Background(), ProfileListInput{UserID: 1, Size: 5, Page: 0})
		require.NoError(t, err)
		assert.Equal(t, 6, gotLimit, "fetches one extra row to probe for a next page")
		assert.Len(t, slice.Subjects, 5)
		assert.False(t, slice.IsLast)
	})

	t.Run("short page is the last page", func(t *testing.T) {
		t.Parallel()
		subjectRepo := noopSubjectRepo()
		subjectRepo.listByUserFn = func(_ context.Context, _ uint, _, _ int) ([]*models.Subject, error) {
			return makeSubjects(3), nil
		}
		svc := newProfileService(noopUserRepo(), noopGenreRepo(), noopOttRepo(),
			subjectRepo, noopCommentRepo(), noopReviewRepo(), noopProgramRepo())

		slice, err := svc.MySubjects(context.Background(), ProfileListInput{UserID: 1, Size: 5, Page: 0})
		require.NoError(t, err)
		assert.Len(t, slice.Subjects, 3)
		assert.True(t, slice.IsLast)
	})

	t.Run("subjects carry total comment activity", func(t *testing.T) {
		t.Parallel()
		subjectRepo := noopSubjectRepo()
		subjectRepo.listByUserFn = func(_ context.Context, _ uint, _, _ int) ([]*models.Subject, error) {
			return makeSubjects(1), nil
		}
		commentRepo := noopCommentRepo()
		commentRepo.countAllBySubjectFn = func(_ context.Context, _ uint) (int64, error) { return 4, nil }
		svc := newProfileService(noopUserRepo(), noopGenreRepo(), noopOttRepo(),
			subjectRepo, commentRepo, noopReviewRepo(), noopProgramRepo())

		slice, err := svc.MySubjects(context.Background(), ProfileListInput{UserID: 1, Size: 5})
		require.NoError(t, err)
		require.Len(t, slice.Subjects, 1)
		assert.Equal(t, int64(4), slice.Subjects[0].ReplyCount)
	})
}

func TestProfileService_CommentedSubjects_OrderPreserved(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.subjectIDsByCommenterFn = func(_ context.Context, _ uint, _, _ int) ([]uint, error) {
		return []uint{9, 3, 5}, nil
	}
	subjectRepo := noopSubjectRepo()
	subjectRepo.listByIDsFn = func(_ context.Context, ids []uint) ([]*models.Subject, error) {
		out := make([]*models.Subject, len(ids))
		for i, id := range ids {
			out[i] = &models.Subject{ID: id}
		}
		return out, nil
	}

	svc := newProfileService(noopUserRepo(), noopGenreRepo(), noopOttRepo(),
		subjectRepo, commentRepo, noopReviewRepo(), noopProgramRepo())
	slice, err := svc.CommentedSubjects(context.Background(), ProfileListInput{UserID: 1, Size: 10})
	require.NoError(t, err)
	require.Len(t, slice.Subjects, 3)
	assert.Equal(t, uint(9), slice.Subjects[0].ID, "most recent participation first")
	assert.Equal(t, uint(3), slice.Subjects[1].ID)
	assert.Equal(t, uint(5), slice.Subjects[2].ID)
}

func TestProfileService_LikedReviews_Slice(t *testing.T) {
	t.Parallel()

	reviewRepo := noopReviewRepo()
	reviewRepo.listLikedByUserFn = func(_ context.Context, _ uint, limit, _ int) ([]*models.Review, error) {
		out := make([]*models.Review, limit)
		for i := range out {
			out[i] = &models.Review{ID: uint(i + 1)}
		}
		return out, nil
	}
	svc := newProfileService(noopUserRepo(), noopGenreRepo(), noopOttRepo(),
		noopSubjectRepo(), noopCommentRepo(), reviewRepo, noopProgramRepo())

	slice, err := svc.LikedReviews(context.Background(), ProfileListInput{UserID: 1, Size: 4})
	require.NoError(t, err)
	assert.Len(t, slice.Reviews, 4)
	assert.False(t, slice.IsLast)
}
