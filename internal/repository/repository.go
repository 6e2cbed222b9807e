// internal/repository/repository.go
package repository

import (
	"log/slog"
	"strings"

	"github.com/dangerclosesec/directory/internal/model"
)

// Transaction interface for handling store transactions.
type Transaction interface {
	Commit() error
	Rollback() error
}

// normalizeEmail is the key used for the email uniqueness index.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// memTransaction holds the directory write lock from Begin until Commit or Rollback.
type memTransaction struct {
	repo   *DirectoryRepository
	staged *stagedTeacher
	done   bool
}

type stagedTeacher struct {
	teacherID int
	email     string
	teacher   *model.Teacher
}

// Commit applies the staged insert, if any, and releases the lock.
func (t *memTransaction) Commit() error {
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer t.repo.mu.Unlock()

	if t.staged != nil {
		t.repo.teachers = append(t.repo.teachers, t.staged.teacher)
		t.repo.emails[t.staged.email] = t.staged.teacherID
		t.repo.nextTeacherID = t.staged.teacherID + 1
	}
	return nil
}

// Rollback discards staged changes. Calling it after Commit is a no-op.
func (t *memTransaction) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if t.staged != nil {
		slog.Warn("Rolling back transaction", "teacherID", t.staged.teacherID)
	}
	t.staged = nil
	t.repo.mu.Unlock()
	return nil
}
