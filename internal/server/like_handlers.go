package server

import (
	"ottify/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleSubjectLike flips the caller's like on a subject and returns the
// resulting state and live count.
func (s *Server) ToggleSubjectLike(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.likeService.ToggleSubjectLike(c.UserContext(), service.ToggleSubjectLikeInput{
		UserID:    currentUserID(c),
		SubjectID: subjectID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// ToggleCommentLike flips the caller's like on a top-level comment.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return s.toggleCommentLike(c, "commentId", false)
}

// ToggleReplyLike flips the caller's like on a reply.
func (s *Server) ToggleReplyLike(c *fiber.Ctx) error {
	return s.toggleCommentLike(c, "replyId", true)
}

func (s *Server) toggleCommentLike(c *fiber.Ctx, param string, isReply bool) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, param)
	if err != nil {
		return nil
	}

	result, err := s.likeService.ToggleCommentLike(c.UserContext(), service.ToggleCommentLikeInput{
		UserID:    currentUserID(c),
		SubjectID: subjectID,
		CommentID: commentID,
		IsReply:   isReply,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}
