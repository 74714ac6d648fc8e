package server

import (
	"ottify/internal/models"
	"ottify/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createSubjectRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	ProgramID    uint   `json:"program_id"`
	ProgramTitle string `json:"program_title"`
	PosterPath   string `json:"poster_path"`
}

type updateSubjectRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	ProgramID    uint   `json:"program_id"`
	ProgramTitle string `json:"program_title"`
	PosterPath   string `json:"poster_path"`
}

// GetSubjects lists discussion subjects, optionally filtered by program.
func (s *Server) GetSubjects(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	var programID *uint
	if pid := c.QueryInt("program_id", 0); pid > 0 {
		v := uint(pid)
		programID = &v
	}

	page, err := s.subjectService.ListSubjects(c.UserContext(), service.ListSubjectsInput{
		Limit:     p.Limit,
		Offset:    p.Offset,
		ProgramID: programID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(page)
}

// GetThread returns a subject with its assembled comment tree.
func (s *Server) GetThread(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thread, err := s.threadService.GetThread(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(thread)
}

// CreateSubject opens a new discussion subject on a program.
func (s *Server) CreateSubject(c *fiber.Ctx) error {
	var req createSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	subject, err := s.subjectService.CreateSubject(c.UserContext(), service.CreateSubjectInput{
		UserID:       currentUserID(c),
		ProgramID:    req.ProgramID,
		Title:        req.Title,
		Content:      req.Content,
		ProgramTitle: req.ProgramTitle,
		PosterPath:   req.PosterPath,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(subject)
}

// UpdateSubject edits a subject's title, content, and program binding.
// Author only.
func (s *Server) UpdateSubject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req updateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	subject, err := s.subjectService.UpdateSubject(c.UserContext(), service.UpdateSubjectInput{
		UserID:       currentUserID(c),
		SubjectID:    id,
		Title:        req.Title,
		Content:      req.Content,
		ProgramID:    req.ProgramID,
		ProgramTitle: req.ProgramTitle,
		PosterPath:   req.PosterPath,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(subject)
}

// DeleteSubject removes a subject and its whole thread. Author only.
func (s *Server) DeleteSubject(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.subjectService.DeleteSubject(c.UserContext(), service.DeleteSubjectInput{
		UserID:    currentUserID(c),
		SubjectID: id,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Subject deleted successfully"})
}
