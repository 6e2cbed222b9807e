// internal/service/enrollment.go
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/model"
)

// CreateTeacherInput is the body of a teacher enrollment request. Only the
// presence of name and email is checked; other fields are stored as given.
type CreateTeacherInput struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required"`
	Phone     string   `json:"phone"`
	Birthday  string   `json:"birthday"`
	Age       int      `json:"age"`
	TaxID     string   `json:"tax_id"`
	Gender    string   `json:"gender"`
	Country   string   `json:"country"`
	Province  string   `json:"province"`
	City      string   `json:"city"`
	Address   string   `json:"address"`
	Languages []string `json:"languages"`
	// Branches is the full branch set, or the additional branches when a
	// primary branch is given separately.
	Branches []int `json:"branches"`
}

type CreateTeacherOutput struct {
	Message          string `json:"message"`
	TeacherID        int    `json:"teacher_id"`
	AssignedBranches []int  `json:"assigned_branches"`
}

// CreateTeacher validates and stores a new teacher.
//
// primaryBranch, when non-nil, is placed first in the branch set followed by
// input.Branches in order; repeated IDs keep their first position. Branch
// existence is checked before email uniqueness and the first failure is
// returned. Nothing is stored unless every check passes.
func (s *DirectoryService) CreateTeacher(ctx context.Context, principal *model.Principal, input CreateTeacherInput, primaryBranch *int) (*CreateTeacherOutput, error) {
	if err := validateInput(s.validate, input); err != nil {
		return nil, err
	}

	targets := targetBranches(primaryBranch, input.Branches)
	if len(targets) == 0 {
		return nil, &domain.ValidationError{Details: []string{"branches must contain at least one branch ID"}}
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, branchID := range targets {
		if !tx.BranchExists(branchID) {
			return nil, &domain.BranchNotFoundError{BranchID: branchID}
		}
	}

	if tx.EmailTaken(input.Email) {
		return nil, domain.ErrEmailAlreadyExists
	}

	teacher := &model.Teacher{
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Birthday:   input.Birthday,
		Age:        input.Age,
		TaxID:      input.TaxID,
		Gender:     input.Gender,
		Country:    input.Country,
		Province:   input.Province,
		City:       input.City,
		Address:    input.Address,
		Languages:  input.Languages,
		Skills:     []int{},
		Branches:   targets,
		EnrolledBy: principalName(principal),
		CreatedAt:  s.now(),
	}
	if teacher.Languages == nil {
		teacher.Languages = []string{}
	}

	teacherID, err := tx.StageTeacher(teacher)
	if err != nil {
		return nil, fmt.Errorf("staging teacher: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing teacher: %w", err)
	}

	slog.InfoContext(ctx, "Teacher enrolled",
		"teacherID", teacherID,
		"branches", targets,
		"enrolledBy", teacher.EnrolledBy,
	)

	s.notifyEnrolled(ctx, teacher)

	return &CreateTeacherOutput{
		Message:          fmt.Sprintf("Teacher created and assigned to %d branch(es)", len(targets)),
		TeacherID:        teacherID,
		AssignedBranches: targets,
	}, nil
}

// notifyEnrolled runs after commit; its failures are logged and never undo the enrollment.
func (s *DirectoryService) notifyEnrolled(ctx context.Context, teacher *model.Teacher) {
	if s.notifier == nil {
		return
	}

	branches := make([]*model.Branch, 0, len(teacher.Branches))
	for _, branchID := range teacher.Branches {
		branch, err := s.repo.FindBranchByID(ctx, branchID)
		if err != nil {
			slog.WarnContext(ctx, "Branch lookup for notification failed", "branchID", branchID, "error", err)
			continue
		}
		branches = append(branches, branch)
	}

	if err := s.notifier.TeacherEnrolled(ctx, teacher, branches); err != nil {
		slog.ErrorContext(ctx, "Enrollment notification failed", "teacherID", teacher.ID, "error", err)
	}
}

func targetBranches(primary *int, rest []int) []int {
	seen := make(map[int]struct{}, len(rest)+1)
	targets := make([]int, 0, len(rest)+1)

	add := func(id int) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		targets = append(targets, id)
	}

	if primary != nil {
		add(*primary)
	}
	for _, id := range rest {
		add(id)
	}
	return targets
}

func principalName(p *model.Principal) string {
	if p == nil {
		return ""
	}
	return p.Username
}
