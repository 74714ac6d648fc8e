package server

import (
	"context"

	"ottify/internal/models"
	"ottify/internal/service"

	"github.com/gofiber/fiber/v2"
)

type updateProfileRequest struct {
	Nickname  string `json:"nickname"`
	AvatarKey string `json:"avatar_key"`
}

type avatarUploadRequest struct {
	ContentType   string `json:"content_type"`
	ContentLength int64  `json:"content_length"`
}

type firstGenreRequest struct {
	GenreID uint `json:"genre_id"`
}

type updateOttsRequest struct {
	OttIDs []uint `json:"ott_ids"`
}

// GetMyProfile returns the caller's profile summary card.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile changes the caller's nickname and profile photo.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:    currentUserID(c),
		Nickname:  req.Nickname,
		AvatarKey: req.AvatarKey,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// RequestAvatarUpload issues a presigned upload slot for a new profile photo.
func (s *Server) RequestAvatarUpload(c *fiber.Ctx) error {
	var req avatarUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	info, err := s.userService.AvatarUploadURL(c.UserContext(), service.AvatarUploadInput{
		UserID:        currentUserID(c),
		ContentType:   req.ContentType,
		ContentLength: req.ContentLength,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(info)
}

// UpdateFirstGenre sets the caller's first-choice genre.
func (s *Server) UpdateFirstGenre(c *fiber.Ctx) error {
	var req firstGenreRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	ug, err := s.userService.UpdateFirstGenre(c.UserContext(), service.UpdateFirstGenreInput{
		UserID:  currentUserID(c),
		GenreID: req.GenreID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(ug)
}

// ToggleSecondGenre adds or removes a genre from the caller's
// second-choice set.
func (s *Server) ToggleSecondGenre(c *fiber.Ctx) error {
	genreID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	selected, err := s.userService.ToggleSecondGenre(c.UserContext(), service.ToggleSecondGenreInput{
		UserID:  currentUserID(c),
		GenreID: genreID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"selected": selected})
}

// UpdateSubscribedOtts replaces the caller's OTT subscription set.
func (s *Server) UpdateSubscribedOtts(c *fiber.Ctx) error {
	var req updateOttsRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	otts, err := s.userService.UpdateSubscribedOtts(c.UserContext(), service.UpdateOttsInput{
		UserID: currentUserID(c),
		OttIDs: req.OttIDs,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"otts": otts})
}

// GetMySubjects lists subjects the caller created.
func (s *Server) GetMySubjects(c *fiber.Ctx) error {
	size, page := parseSlicePage(c)
	slice, err := s.profileService.MySubjects(c.UserContext(), service.ProfileListInput{
		UserID: currentUserID(c), Size: size, Page: page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(slice)
}

// GetMyCommentedSubjects lists subjects the caller commented in.
func (s *Server) GetMyCommentedSubjects(c *fiber.Ctx) error {
	size, page := parseSlicePage(c)
	slice, err := s.profileService.CommentedSubjects(c.UserContext(), service.ProfileListInput{
		UserID: currentUserID(c), Size: size, Page: page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(slice)
}

// GetMyReviews lists reviews the caller wrote.
func (s *Server) GetMyReviews(c *fiber.Ctx) error {
	size, page := parseSlicePage(c)
	slice, err := s.profileService.MyReviews(c.UserContext(), service.ProfileListInput{
		UserID: currentUserID(c), Size: size, Page: page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(slice)
}

// GetMyLikedReviews lists reviews the caller liked.
func (s *Server) GetMyLikedReviews(c *fiber.Ctx) error {
	size, page := parseSlicePage(c)
	slice, err := s.profileService.LikedReviews(c.UserContext(), service.ProfileListInput{
		UserID: currentUserID(c), Size: size, Page: page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(slice)
}

// GetMyLikedPrograms lists programs the caller wants to watch.
func (s *Server) GetMyLikedPrograms(c *fiber.Ctx) error {
	size, page := parseSlicePage(c)
	slice, err := s.profileService.LikedPrograms(c.UserContext(), service.ProfileListInput{
		UserID: currentUserID(c), Size: size, Page: page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(slice)
}

// GetMyUninterestedPrograms lists programs the caller asked to hide.
func (s *Server) GetMyUninterestedPrograms(c *fiber.Ctx) error {
	size, page := parseSlicePage(c)
	slice, err := s.profileService.UninterestedPrograms(c.UserContext(), service.ProfileListInput{
		UserID: currentUserID(c), Size: size, Page: page,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(slice)
}

// MarkProgramLiked flags a program as one the caller wants to watch.
func (s *Server) MarkProgramLiked(c *fiber.Ctx) error {
	return s.programMark(c, s.userService.MarkProgramLiked, "Program marked as liked")
}

// UnmarkProgramLiked removes the want-to-watch flag.
func (s *Server) UnmarkProgramLiked(c *fiber.Ctx) error {
	return s.programMark(c, s.userService.UnmarkProgramLiked, "Program unmarked as liked")
}

// MarkProgramUninterested hides a program from the caller's feeds.
func (s *Server) MarkProgramUninterested(c *fiber.Ctx) error {
	return s.programMark(c, s.userService.MarkProgramUninterested, "Program marked as uninterested")
}

// UnmarkProgramUninterested removes the hidden flag.
func (s *Server) UnmarkProgramUninterested(c *fiber.Ctx) error {
	return s.programMark(c, s.userService.UnmarkProgramUninterested, "Program unmarked as uninterested")
}

func (s *Server) programMark(c *fiber.Ctx, op func(ctx context.Context, in service.ProgramMarkInput) error, message string) error {
	programID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := op(c.UserContext(), service.ProgramMarkInput{
		UserID:    currentUserID(c),
		ProgramID: programID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": message})
}
