package service

import (
	"context"
	"strings"

	"ottify/internal/models"
	"ottify/internal/repository"
)

// ThreadService assembles discussion threads and manages comments and
// replies within them. Threads are at most two levels deep: replies
// attach to top-level comments only.
type ThreadService struct {
	subjectRepo repository.SubjectRepository
	commentRepo repository.CommentRepository
}

// Thread is a fully assembled discussion: the subject, its top-level
// comments in posting order, each with its replies in posting order.
// CommentCount counts top-level comments only.
type Thread struct {
	Subject      *models.Subject  `json:"subject"`
	Comments     []*ThreadComment `json:"comments"`
	CommentCount int64            `json:"comment_count"`
}

// ThreadComment is a top-level comment with its replies attached.
type ThreadComment struct {
	*models.Comment
	Replies []*models.Comment `json:"replies"`
}

type AddCommentInput struct {
	UserID    uint
	SubjectID uint
	Content   string
}

type AddReplyInput struct {
	UserID    uint
	SubjectID uint
	ParentID  uint
	Content   string
}

type EditCommentInput struct {
	UserID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	SubjectID uint
	CommentID uint
}

type DeleteReplyInput struct {
	UserID    uint
	SubjectID uint
	ParentID  uint
	ReplyID   uint
}

func NewThreadService(
	subjectRepo repository.SubjectRepository,
	commentRepo repository.CommentRepository,
) *ThreadService {
	return &ThreadService{
		subjectRepo: subjectRepo,
		commentRepo: commentRepo,
	}
}

const maxCommentLen = 1000

// GetThread loads the subject and assembles its two-level comment tree.
func (s *ThreadService) GetThread(ctx context.Context, subjectID uint) (*Thread, error) {
	subject, err := s.subjectRepo.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	topLevel, err := s.commentRepo.ListTopLevel(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	comments := make([]*ThreadComment, 0, len(topLevel))
	for _, c := range topLevel {
		replies, err := s.commentRepo.ListReplies(ctx, subjectID, c.ID)
		if err != nil {
			return nil, err
		}
		if replies == nil {
			replies = []*models.Comment{}
		}
		comments = append(comments, &ThreadComment{Comment: c, Replies: replies})
	}

	return &Thread{
		Subject:      subject,
		Comments:     comments,
		CommentCount: int64(len(topLevel)),
	}, nil
}

// AddComment posts a top-level comment to a subject.
func (s *ThreadService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}
	if _, err := s.subjectRepo.GetByID(ctx, in.SubjectID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		SubjectID: in.SubjectID,
		Content:   in.Content,
		UserID:    in.UserID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// AddReply posts a reply under a top-level comment. Replying to a reply
// is rejected so threads never exceed two levels.
func (s *ThreadService) AddReply(ctx context.Context, in AddReplyInput) (*models.Comment, error) {
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}

	parent, err := s.commentRepo.GetInSubject(ctx, in.SubjectID, in.ParentID)
	if err != nil {
		return nil, err
	}
	if parent.IsReply() {
		return nil, models.NewValidationError("Cannot reply to a reply")
	}

	reply := &models.Comment{
		SubjectID: in.SubjectID,
		ParentID:  &parent.ID,
		Content:   in.Content,
		UserID:    in.UserID,
	}
	if err := s.commentRepo.Create(ctx, reply); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, reply.ID)
}

// EditComment edits a top-level comment's content. Author only.
func (s *ThreadService) EditComment(ctx context.Context, in EditCommentInput) (*models.Comment, error) {
	return s.edit(ctx, in, s.commentRepo.GetTopLevel)
}

// EditReply edits a reply's content. Author only.
func (s *ThreadService) EditReply(ctx context.Context, in EditCommentInput) (*models.Comment, error) {
	return s.edit(ctx, in, s.commentRepo.GetReply)
}

func (s *ThreadService) edit(ctx context.Context, in EditCommentInput, lookup func(context.Context, uint) (*models.Comment, error)) (*models.Comment, error) {
	if err := validateCommentContent(in.Content); err != nil {
		return nil, err
	}
	comment, err := lookup(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own comments")
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, in.CommentID)
}

// DeleteComment removes a top-level comment addressed by its subject and
// comment ids, taking its replies and all their likes with it. A reply
// id on this path is NotFound; replies delete through their full path.
// Author only.
func (s *ThreadService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetInSubject(ctx, in.SubjectID, in.CommentID)
	if err != nil {
		return err
	}
	if comment.IsReply() {
		return models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.DeleteCascade(ctx, in.CommentID)
}

// DeleteReply removes a reply addressed by its full
// subject/comment/reply path. Every id on the path must resolve: a
// reply whose parent is not the addressed comment is NotFound. Author
// only.
func (s *ThreadService) DeleteReply(ctx context.Context, in DeleteReplyInput) error {
	reply, err := s.commentRepo.GetInSubject(ctx, in.SubjectID, in.ReplyID)
	if err != nil {
		return err
	}
	if !reply.IsReply() || *reply.ParentID != in.ParentID {
		return models.NewNotFoundError("Reply", in.ReplyID)
	}
	if reply.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.DeleteCascade(ctx, in.ReplyID)
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError("Content too long (max 1000 characters)")
	}
	return nil
}
