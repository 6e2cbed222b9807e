package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/mocks"
	"github.com/dangerclosesec/directory/internal/model"
	"github.com/dangerclosesec/directory/internal/repository"
	"github.com/dangerclosesec/directory/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var admin = &model.Principal{Username: "admin"}

func newDirectory(t *testing.T, notifier service.EnrollmentNotifier) (*service.DirectoryService, *repository.DirectoryRepository) {
	t.Helper()

	repo, err := repository.NewDirectoryRepository(
		[]model.Branch{
			{ID: 1, Code: "MATARAM", Name: "Offline Mataram"},
			{ID: 2, Code: "DENPASAR", Name: "Offline Denpasar"},
			{ID: 3, Code: "ONLINE", Name: "Online Class"},
		},
		[]model.Skill{{ID: 1, Name: "Mathematics"}},
		[]model.Teacher{
			{ID: 1, Name: "Existing", Email: "existing@example.com", Branches: []int{2}},
		},
	)
	require.NoError(t, err)

	return service.NewDirectoryService(repo, notifier), repo
}

func intPtr(i int) *int { return &i }

func TestCreateTeacher(t *testing.T) {
	ctx := context.Background()

	t.Run("primary and additional branches", func(t *testing.T) {
		svc, repo := newDirectory(t, nil)
		next := repo.NextTeacherID(ctx)

		out, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
			Name:      "New Teacher",
			Email:     "new@x.com",
			Age:       29,
			Languages: []string{"Indonesian"},
			Branches:  []int{2},
		}, intPtr(1))
		require.NoError(t, err)

		assert.Equal(t, next, out.TeacherID)
		assert.Equal(t, []int{1, 2}, out.AssignedBranches)
		assert.NotEmpty(t, out.Message)
		assert.Equal(t, next+1, repo.NextTeacherID(ctx))

		teachers, err := svc.ListTeachers(ctx)
		require.NoError(t, err)
		require.Len(t, teachers, 2)

		created := teachers[1]
		assert.Equal(t, next, created.ID)
		assert.Equal(t, []int{1, 2}, created.Branches)
		assert.Equal(t, []int{}, created.Skills)
		assert.Equal(t, 29, created.Age)
		assert.Equal(t, "admin", created.EnrolledBy)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("branch set from body", func(t *testing.T) {
		svc, repo := newDirectory(t, nil)

		out, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
			Name:     "Body Branches",
			Email:    "body@example.com",
			Branches: []int{3, 1, 3},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1}, out.AssignedBranches)

		byBranch, err := svc.TeachersByBranch(ctx, 3)
		require.NoError(t, err)
		require.Len(t, byBranch, 1)
		assert.Equal(t, out.TeacherID, byBranch[0].ID)
		assert.Equal(t, 3, repo.NextTeacherID(ctx))
	})

	t.Run("unknown branch changes nothing", func(t *testing.T) {
		svc, repo := newDirectory(t, nil)
		next := repo.NextTeacherID(ctx)

		_, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
			Name:     "Nobody",
			Email:    "nobody@example.com",
			Branches: []int{2, 98},
		}, intPtr(99))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var notFound *domain.BranchNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, 99, notFound.BranchID, "first offending ID in submission order")

		assert.Equal(t, next, repo.NextTeacherID(ctx))
		teachers, err := svc.ListTeachers(ctx)
		require.NoError(t, err)
		assert.Len(t, teachers, 1)
	})

	t.Run("branch check runs before email check", func(t *testing.T) {
		svc, _ := newDirectory(t, nil)

		_, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
			Name:     "Dup",
			Email:    "existing@example.com",
			Branches: []int{42},
		}, nil)
		assert.ErrorIs(t, err, domain.ErrBranchNotFound)
		assert.NotErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		svc, repo := newDirectory(t, nil)

		input := service.CreateTeacherInput{Name: "Twice", Email: "twice@example.com", Branches: []int{1}}
		_, err := svc.CreateTeacher(ctx, admin, input, nil)
		require.NoError(t, err)
		next := repo.NextTeacherID(ctx)

		input.Email = "TWICE@example.com"
		_, err = svc.CreateTeacher(ctx, admin, input, nil)
		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, next, repo.NextTeacherID(ctx))
	})

	t.Run("missing fields", func(t *testing.T) {
		svc, _ := newDirectory(t, nil)

		_, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{Branches: []int{1}}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.ElementsMatch(t, []string{"name is required", "email is required"}, validation.Details)
	})

	t.Run("no branches", func(t *testing.T) {
		svc, repo := newDirectory(t, nil)

		_, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{Name: "A", Email: "a@example.com"}, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 2, repo.NextTeacherID(ctx))
	})
}

func TestCreateTeacherNotifies(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	notifier := mocks.NewMockEnrollmentNotifier(ctrl)
	svc, _ := newDirectory(t, notifier)

	notifier.EXPECT().
		TeacherEnrolled(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, teacher *model.Teacher, branches []*model.Branch) error {
			assert.Equal(t, 2, teacher.ID)
			assert.Equal(t, "notify@example.com", teacher.Email)
			require.Len(t, branches, 2)
			assert.Equal(t, "DENPASAR", branches[0].Code)
			assert.Equal(t, "MATARAM", branches[1].Code)
			return nil
		})

	_, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
		Name:     "Notify",
		Email:    "notify@example.com",
		Branches: []int{2, 1},
	}, nil)
	require.NoError(t, err)
}

func TestCreateTeacherNotifierFailureKeepsTeacher(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	notifier := mocks.NewMockEnrollmentNotifier(ctrl)
	svc, repo := newDirectory(t, notifier)

	notifier.EXPECT().
		TeacherEnrolled(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("sendgrid unavailable"))

	out, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
		Name:     "Still Here",
		Email:    "still@example.com",
		Branches: []int{1},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.TeacherID)
	assert.Equal(t, 3, repo.NextTeacherID(ctx))
}

func TestCreateTeacherNoNotificationOnFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	// No expectations: any call fails the test.
	notifier := mocks.NewMockEnrollmentNotifier(ctrl)
	svc, _ := newDirectory(t, notifier)

	_, err := svc.CreateTeacher(ctx, admin, service.CreateTeacherInput{
		Name:     "Dup",
		Email:    "existing@example.com",
		Branches: []int{1},
	}, nil)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}
