// internal/service/notifier.go
package service

import (
	"context"

	"github.com/dangerclosesec/directory/internal/model"
)

// EnrollmentNotifier is told about every teacher that was committed to the store.
type EnrollmentNotifier interface {
	TeacherEnrolled(ctx context.Context, teacher *model.Teacher, branches []*model.Branch) error
}
