// internal/service/directory.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dangerclosesec/directory/internal/model"
	"github.com/dangerclosesec/directory/internal/repository"
	"github.com/go-playground/validator/v10"
)

// DirectoryService serves branch, skill and teacher lookups and teacher enrollment.
type DirectoryService struct {
	repo     repository.DirectoryRepositoryIface
	notifier EnrollmentNotifier
	validate *validator.Validate
	now      func() time.Time
}

// NewDirectoryService builds the service. notifier may be nil.
func NewDirectoryService(repo repository.DirectoryRepositoryIface, notifier EnrollmentNotifier) *DirectoryService {
	return &DirectoryService{
		repo:     repo,
		notifier: notifier,
		validate: newValidator(),
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *DirectoryService) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	branches, err := s.repo.ListBranches(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	return branches, nil
}

func (s *DirectoryService) ListSkills(ctx context.Context) ([]*model.Skill, error) {
	skills, err := s.repo.ListSkills(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	return skills, nil
}

// TeachersByBranch fails with domain.ErrBranchNotFound for an unknown branch.
// A known branch without teachers returns an empty slice.
func (s *DirectoryService) TeachersByBranch(ctx context.Context, branchID int) ([]*model.Teacher, error) {
	teachers, err := s.repo.FindTeachersByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("listing teachers of branch %d: %w", branchID, err)
	}
	return teachers, nil
}

// ListTeachers is the administrative view: every teacher with all fields.
func (s *DirectoryService) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	teachers, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing teachers: %w", err)
	}
	return teachers, nil
}
