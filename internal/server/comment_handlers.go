package server

import (
	"context"

	"ottify/internal/models"
	"ottify/internal/service"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Content string `json:"content"`
}

// CreateComment posts a top-level comment on a subject.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.threadService.AddComment(c.UserContext(), service.AddCommentInput{
		UserID:    currentUserID(c),
		SubjectID: subjectID,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// CreateReply posts a reply under a top-level comment.
func (s *Server) CreateReply(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	parentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reply, err := s.threadService.AddReply(c.UserContext(), service.AddReplyInput{
		UserID:    currentUserID(c),
		SubjectID: subjectID,
		ParentID:  parentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

// UpdateComment edits a top-level comment. Author only.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	return s.updateCommentLevel(c, s.threadService.EditComment)
}

// UpdateReply edits a reply. Author only.
func (s *Server) UpdateReply(c *fiber.Ctx) error {
	return s.updateCommentLevel(c, s.threadService.EditReply)
}

func (s *Server) updateCommentLevel(c *fiber.Ctx, edit func(context.Context, service.EditCommentInput) (*models.Comment, error)) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := edit(c.UserContext(), service.EditCommentInput{
		UserID:    currentUserID(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment removes a top-level comment addressed inside its
// subject, cascading to its replies. Author only.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.threadService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		SubjectID: subjectID,
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully"})
}

// DeleteReply removes a reply addressed by its full path; every id on
// the path must resolve. Author only.
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	parentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}
	replyID, err := s.parseID(c, "replyId")
	if err != nil {
		return nil
	}

	if err := s.threadService.DeleteReply(c.UserContext(), service.DeleteReplyInput{
		UserID:    currentUserID(c),
		SubjectID: subjectID,
		ParentID:  parentID,
		ReplyID:   replyID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reply deleted successfully"})
}
