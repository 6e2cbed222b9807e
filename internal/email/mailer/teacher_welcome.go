// internal/email/mailer/teacher_welcome.go
package mailer

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/directory/internal/email"
	"github.com/dangerclosesec/directory/internal/model"
)

// TeacherWelcomeTemplateData contains data for the teacher_welcome template
type TeacherWelcomeTemplateData struct {
	Name      string
	TeacherID int
	Branches  []*model.Branch
}

// TeacherWelcome emails newly enrolled teachers the branches they were attached to.
type TeacherWelcome struct {
	service *email.Service
}

func NewTeacherWelcome(service *email.Service) *TeacherWelcome {
	return &TeacherWelcome{service: service}
}

func (m *TeacherWelcome) TeacherEnrolled(ctx context.Context, teacher *model.Teacher, branches []*model.Branch) error {
	if err := m.service.SendEmail(email.EmailData{
		To:           teacher.Email,
		Subject:      "Welcome to the branch directory",
		TemplateName: "teacher_welcome",
		TemplateData: TeacherWelcomeTemplateData{
			Name:      teacher.Name,
			TeacherID: teacher.ID,
			Branches:  branches,
		},
	}); err != nil {
		return fmt.Errorf("sending welcome email to teacher %d: %w", teacher.ID, err)
	}
	return nil
}
