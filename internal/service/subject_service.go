package service

import (
	"context"
	"strings"

	"ottify/internal/models"
	"ottify/internal/repository"
)

// SubjectService manages the lifecycle of discussion subjects.
type SubjectService struct {
	subjectRepo repository.SubjectRepository
	programRepo repository.ProgramRepository
	commentRepo repository.CommentRepository
}

type CreateSubjectInput struct {
	UserID     uint
	ProgramID  uint
	Title      string
	Content    string
	PosterPath string
	// ProgramTitle caches the catalogue title locally on first reference.
	ProgramTitle string
}

type UpdateSubjectInput struct {
	UserID    uint
	SubjectID uint
	Title     string
	Content   string
	// ProgramID, when non-zero, rebinds the subject to another program
	// under the same find-or-create policy as creation.
	ProgramID    uint
	ProgramTitle string
	PosterPath   string
}

type DeleteSubjectInput struct {
	UserID    uint
	SubjectID uint
}

type ListSubjectsInput struct {
	Limit     int
	Offset    int
	ProgramID *uint
}

// SubjectPage is a paginated subject listing with the total row count.
type SubjectPage struct {
	Subjects []*models.Subject `json:"subjects"`
	Total    int64             `json:"total"`
}

func NewSubjectService(
	subjectRepo repository.SubjectRepository,
	programRepo repository.ProgramRepository,
	commentRepo repository.CommentRepository,
) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		programRepo: programRepo,
		commentRepo: commentRepo,
	}
}

const (
	maxSubjectTitleLen   = 100
	maxSubjectContentLen = 5000
)

// CreateSubject creates a discussion subject, caching the program row
// first if this is the first reference to that catalogue id.
func (s *SubjectService) CreateSubject(ctx context.Context, in CreateSubjectInput) (*models.Subject, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxSubjectTitleLen {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxSubjectContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}
	if in.ProgramID == 0 {
		return nil, models.NewValidationError("program_id is required")
	}
	if strings.TrimSpace(in.ProgramTitle) == "" {
		return nil, models.NewValidationError("Program title is required")
	}

	program, err := s.programRepo.GetOrCreate(ctx, &models.Program{
		ID:         in.ProgramID,
		Title:      in.ProgramTitle,
		PosterPath: in.PosterPath,
	})
	if err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Title:     in.Title,
		Content:   in.Content,
		UserID:    in.UserID,
		ProgramID: program.ID,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}
	return s.subjectRepo.GetByID(ctx, subject.ID)
}

func (s *SubjectService) GetSubject(ctx context.Context, id uint) (*models.Subject, error) {
	return s.subjectRepo.GetByID(ctx, id)
}

func (s *SubjectService) ListSubjects(ctx context.Context, in ListSubjectsInput) (*SubjectPage, error) {
	subjects, total, err := s.subjectRepo.List(ctx, in.Limit, in.Offset, in.ProgramID)
	if err != nil {
		return nil, err
	}
	return &SubjectPage{Subjects: subjects, Total: total}, nil
}

// UpdateSubject replaces the subject's title and content and, when a
// program id is given, re-resolves the program binding the same way
// creation does. Only the author may edit; the author never changes.
func (s *SubjectService) UpdateSubject(ctx context.Context, in UpdateSubjectInput) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, in.SubjectID)
	if err != nil {
		return nil, err
	}
	if subject.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own subjects")
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxSubjectTitleLen {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxSubjectContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	subject.Title = in.Title
	subject.Content = in.Content

	if in.ProgramID != 0 {
		if strings.TrimSpace(in.ProgramTitle) == "" {
			return nil, models.NewValidationError("Program title is required")
		}
		program, err := s.programRepo.GetOrCreate(ctx, &models.Program{
			ID:         in.ProgramID,
			Title:      in.ProgramTitle,
			PosterPath: in.PosterPath,
		})
		if err != nil {
			return nil, err
		}
		subject.ProgramID = program.ID
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}
	return s.subjectRepo.GetByID(ctx, in.SubjectID)
}

// DeleteSubject removes the subject and everything hanging off it.
// Only the author may delete.
func (s *SubjectService) DeleteSubject(ctx context.Context, in DeleteSubjectInput) error {
	subject, err := s.subjectRepo.GetByID(ctx, in.SubjectID)
	if err != nil {
		return err
	}
	if subject.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own subjects")
	}
	return s.subjectRepo.Delete(ctx, in.SubjectID)
}
