// internal/repository/directory.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/model"
)

var (
	ErrTxDone         = errors.New("transaction already finished")
	ErrAlreadyStaged  = errors.New("transaction already holds a staged teacher")
	ErrDuplicateID    = errors.New("duplicate record ID in seed")
	ErrDuplicateEmail = errors.New("duplicate teacher email in seed")
)

// TeacherTx is a write transaction over the teacher collection. It holds the
// directory write lock, so checks made through it stay valid until Commit.
type TeacherTx interface {
	Transaction

	BranchExists(branchID int) bool
	EmailTaken(email string) bool
	// StageTeacher assigns the next teacher ID to t and queues it for Commit.
	StageTeacher(t *model.Teacher) (int, error)
}

type DirectoryRepositoryIface interface {
	Begin(ctx context.Context) (TeacherTx, error)

	ListBranches(ctx context.Context) ([]*model.Branch, error)
	FindBranchByID(ctx context.Context, id int) (*model.Branch, error)
	ListSkills(ctx context.Context) ([]*model.Skill, error)
	ListTeachers(ctx context.Context) ([]*model.Teacher, error)
	FindTeachersByBranch(ctx context.Context, branchID int) ([]*model.Teacher, error)
	NextTeacherID(ctx context.Context) int
}

// DirectoryRepository keeps branches, skills and teachers in memory, in
// insertion order. Branches and skills are fixed after construction.
type DirectoryRepository struct {
	mu sync.RWMutex

	branches    []*model.Branch
	branchIndex map[int]*model.Branch
	skills      []*model.Skill

	teachers      []*model.Teacher
	emails        map[string]int
	nextTeacherID int
}

var _ DirectoryRepositoryIface = (*DirectoryRepository)(nil)

func NewDirectoryRepository(branches []model.Branch, skills []model.Skill, teachers []model.Teacher) (*DirectoryRepository, error) {
	r := &DirectoryRepository{
		branchIndex:   make(map[int]*model.Branch, len(branches)),
		emails:        make(map[string]int, len(teachers)),
		nextTeacherID: 1,
	}

	for i := range branches {
		b := branches[i]
		if _, ok := r.branchIndex[b.ID]; ok {
			return nil, fmt.Errorf("branch %d: %w", b.ID, ErrDuplicateID)
		}
		r.branches = append(r.branches, &b)
		r.branchIndex[b.ID] = &b
	}

	skillIDs := make(map[int]struct{}, len(skills))
	for i := range skills {
		s := skills[i]
		if _, ok := skillIDs[s.ID]; ok {
			return nil, fmt.Errorf("skill %d: %w", s.ID, ErrDuplicateID)
		}
		skillIDs[s.ID] = struct{}{}
		r.skills = append(r.skills, &s)
	}

	teacherIDs := make(map[int]struct{}, len(teachers))
	for i := range teachers {
		t := teachers[i].Clone()
		if _, ok := teacherIDs[t.ID]; ok {
			return nil, fmt.Errorf("teacher %d: %w", t.ID, ErrDuplicateID)
		}
		key := normalizeEmail(t.Email)
		if _, ok := r.emails[key]; ok {
			return nil, fmt.Errorf("teacher %d: %w", t.ID, ErrDuplicateEmail)
		}
		for _, branchID := range t.Branches {
			if _, ok := r.branchIndex[branchID]; !ok {
				return nil, fmt.Errorf("seeding teacher %d: %w", t.ID, &domain.BranchNotFoundError{BranchID: branchID})
			}
		}

		teacherIDs[t.ID] = struct{}{}
		r.emails[key] = t.ID
		r.teachers = append(r.teachers, t)
		if t.ID >= r.nextTeacherID {
			r.nextTeacherID = t.ID + 1
		}
	}

	return r, nil
}

// Begin acquires the write lock and returns a transaction that owns it.
func (r *DirectoryRepository) Begin(ctx context.Context) (TeacherTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	return &memTransaction{repo: r}, nil
}

func (r *DirectoryRepository) ListBranches(ctx context.Context) ([]*model.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	branches := make([]*model.Branch, 0, len(r.branches))
	for _, b := range r.branches {
		c := *b
		branches = append(branches, &c)
	}
	return branches, nil
}

func (r *DirectoryRepository) FindBranchByID(ctx context.Context, id int) (*model.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.branchIndex[id]
	if !ok {
		return nil, &domain.BranchNotFoundError{BranchID: id}
	}
	c := *b
	return &c, nil
}

func (r *DirectoryRepository) ListSkills(ctx context.Context) ([]*model.Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	skills := make([]*model.Skill, 0, len(r.skills))
	for _, s := range r.skills {
		c := *s
		skills = append(skills, &c)
	}
	return skills, nil
}

func (r *DirectoryRepository) ListTeachers(ctx context.Context) ([]*model.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teachers := make([]*model.Teacher, 0, len(r.teachers))
	for _, t := range r.teachers {
		teachers = append(teachers, t.Clone())
	}
	return teachers, nil
}

// FindTeachersByBranch returns the teachers attached to branchID in store
// order. The branch must exist; a branch without teachers yields an empty slice.
func (r *DirectoryRepository) FindTeachersByBranch(ctx context.Context, branchID int) ([]*model.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.branchIndex[branchID]; !ok {
		return nil, &domain.BranchNotFoundError{BranchID: branchID}
	}

	teachers := []*model.Teacher{}
	for _, t := range r.teachers {
		if t.ServesBranch(branchID) {
			teachers = append(teachers, t.Clone())
		}
	}
	return teachers, nil
}

// NextTeacherID returns the ID the next committed teacher will receive.
func (r *DirectoryRepository) NextTeacherID(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextTeacherID
}

// BranchExists is only valid while the transaction holds the lock.
func (t *memTransaction) BranchExists(branchID int) bool {
	_, ok := t.repo.branchIndex[branchID]
	return ok
}

func (t *memTransaction) EmailTaken(email string) bool {
	_, ok := t.repo.emails[normalizeEmail(email)]
	return ok
}

func (t *memTransaction) StageTeacher(teacher *model.Teacher) (int, error) {
	if t.done {
		return 0, ErrTxDone
	}
	if t.staged != nil {
		return 0, ErrAlreadyStaged
	}

	stored := teacher.Clone()
	stored.ID = t.repo.nextTeacherID

	t.staged = &stagedTeacher{
		teacherID: stored.ID,
		email:     normalizeEmail(stored.Email),
		teacher:   stored,
	}
	teacher.ID = stored.ID
	return stored.ID, nil
}
