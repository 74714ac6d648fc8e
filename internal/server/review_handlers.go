package server

import (
	"ottify/internal/models"
	"ottify/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createReviewRequest struct {
	ProgramID    uint    `json:"program_id"`
	ProgramTitle string  `json:"program_title"`
	PosterPath   string  `json:"poster_path"`
	Content      string  `json:"content"`
	Rating       float64 `json:"rating"`
}

// GetLatestReviews lists recent reviews across all programs.
func (s *Server) GetLatestReviews(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	reviews, err := s.reviewService.LatestReviews(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// CreateReview posts a rating and write-up for a program.
func (s *Server) CreateReview(c *fiber.Ctx) error {
	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.CreateReview(c.UserContext(), service.CreateReviewInput{
		UserID:       currentUserID(c),
		ProgramID:    req.ProgramID,
		ProgramTitle: req.ProgramTitle,
		PosterPath:   req.PosterPath,
		Content:      req.Content,
		Rating:       req.Rating,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// LikeReview records the caller's like on a review.
func (s *Server) LikeReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.LikeReview(c.UserContext(), service.ReviewLikeInput{
		UserID:   currentUserID(c),
		ReviewID: id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(review)
}

// UnlikeReview removes the caller's like on a review.
func (s *Server) UnlikeReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	review, err := s.reviewService.UnlikeReview(c.UserContext(), service.ReviewLikeInput{
		UserID:   currentUserID(c),
		ReviewID: id,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(review)
}
