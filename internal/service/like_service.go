package service

import (
	"context"

	"ottify/internal/models"
	"ottify/internal/repository"
)

// LikeService toggles likes on subjects and comments. A toggle checks
// the current like state and flips it; a repeated toggle restores the
// prior state with the same count as before the pair.
type LikeService struct {
	likeRepo    repository.LikeRepository
	subjectRepo repository.SubjectRepository
	commentRepo repository.CommentRepository
}

type ToggleSubjectLikeInput struct {
	UserID    uint
	SubjectID uint
}

type ToggleCommentLikeInput struct {
	UserID    uint
	SubjectID uint
	CommentID uint
	// IsReply selects which comment level the target id addresses.
	IsReply bool
}

// LikeResult reports the state after a toggle.
type LikeResult struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	subjectRepo repository.SubjectRepository,
	commentRepo repository.CommentRepository,
) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		subjectRepo: subjectRepo,
		commentRepo: commentRepo,
	}
}

// ToggleSubjectLike flips the user's like on a subject. The insert path
// is race safe: two concurrent first-likes resolve to one like row.
func (s *LikeService) ToggleSubjectLike(ctx context.Context, in ToggleSubjectLikeInput) (*LikeResult, error) {
	if _, err := s.subjectRepo.GetByID(ctx, in.SubjectID); err != nil {
		return nil, err
	}

	liked, err := s.likeRepo.SubjectLikeExists(ctx, in.UserID, in.SubjectID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.likeRepo.DeleteSubjectLike(ctx, in.UserID, in.SubjectID); err != nil {
			return nil, err
		}
	} else {
		if err := s.likeRepo.InsertSubjectLike(ctx, in.UserID, in.SubjectID); err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.CountSubjectLikes(ctx, in.SubjectID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: !liked, Count: count}, nil
}

// ToggleCommentLike flips the user's like on a comment or reply. The
// IsReply flag disambiguates the target level: a top-level target is
// looked up among parent-null rows, a reply target among parent-set
// rows, so a stray id at the wrong level is a NotFound rather than a
// like on the wrong row.
func (s *LikeService) ToggleCommentLike(ctx context.Context, in ToggleCommentLikeInput) (*LikeResult, error) {
	var comment *models.Comment
	var err error
	if in.IsReply {
		comment, err = s.commentRepo.GetReply(ctx, in.CommentID)
	} else {
		comment, err = s.commentRepo.GetTopLevel(ctx, in.CommentID)
	}
	if err != nil {
		return nil, err
	}
	if comment.SubjectID != in.SubjectID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}

	liked, err := s.likeRepo.CommentLikeExists(ctx, in.UserID, in.CommentID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.likeRepo.DeleteCommentLike(ctx, in.UserID, in.CommentID); err != nil {
			return nil, err
		}
	} else {
		if err := s.likeRepo.InsertCommentLike(ctx, in.UserID, comment.SubjectID, in.CommentID, in.IsReply); err != nil {
			return nil, err
		}
	}

	count, err := s.likeRepo.CountCommentLikes(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: !liked, Count: count}, nil
}
