package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dangerclosesec/directory/internal/domain"
	"github.com/dangerclosesec/directory/internal/model"
	"github.com/dangerclosesec/directory/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBranches() []model.Branch {
	return []model.Branch{
		{ID: 1, Code: "MATARAM", Name: "Offline Mataram"},
		{ID: 2, Code: "DENPASAR", Name: "Offline Denpasar"},
		{ID: 5, Code: "EMPTY", Name: "No Teachers Yet"},
	}
}

func testTeachers() []model.Teacher {
	return []model.Teacher{
		{ID: 4, Name: "First", Email: "first@example.com", Branches: []int{2}},
		{ID: 7, Name: "Second", Email: "Second@Example.com", Branches: []int{1, 2}},
	}
}

func newRepo(t *testing.T) *repository.DirectoryRepository {
	t.Helper()
	repo, err := repository.NewDirectoryRepository(testBranches(), []model.Skill{{ID: 1, Name: "Math"}, {ID: 2, Name: "English"}}, testTeachers())
	require.NoError(t, err)
	return repo
}

func TestNewDirectoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("counter starts above seeded max", func(t *testing.T) {
		repo := newRepo(t)
		assert.Equal(t, 8, repo.NextTeacherID(ctx))
	})

	t.Run("empty store starts at one", func(t *testing.T) {
		repo, err := repository.NewDirectoryRepository(nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.NextTeacherID(ctx))
	})

	t.Run("duplicate branch id", func(t *testing.T) {
		_, err := repository.NewDirectoryRepository([]model.Branch{{ID: 1}, {ID: 1}}, nil, nil)
		assert.ErrorIs(t, err, repository.ErrDuplicateID)
	})

	t.Run("duplicate teacher email ignores case", func(t *testing.T) {
		teachers := []model.Teacher{
			{ID: 1, Email: "a@example.com", Branches: []int{1}},
			{ID: 2, Email: " A@example.com", Branches: []int{1}},
		}
		_, err := repository.NewDirectoryRepository(testBranches(), nil, teachers)
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("teacher referencing unknown branch", func(t *testing.T) {
		teachers := []model.Teacher{{ID: 1, Email: "a@example.com", Branches: []int{99}}}
		_, err := repository.NewDirectoryRepository(testBranches(), nil, teachers)
		assert.ErrorIs(t, err, domain.ErrBranchNotFound)
	})
}

func TestListsPreserveOrder(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	branches, err := repo.ListBranches(ctx)
	require.NoError(t, err)
	require.Len(t, branches, 3)
	assert.Equal(t, []int{1, 2, 5}, []int{branches[0].ID, branches[1].ID, branches[2].ID})

	skills, err := repo.ListSkills(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Math", skills[0].Name)
	assert.Equal(t, "English", skills[1].Name)

	teachers, err := repo.ListTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, 4, teachers[0].ID)
	assert.Equal(t, 7, teachers[1].ID)
}

func TestListTeachersReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	teachers, err := repo.ListTeachers(ctx)
	require.NoError(t, err)
	teachers[1].Branches[0] = 99

	again, err := repo.ListTeachers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, again[1].Branches)
}

func TestFindTeachersByBranch(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	t.Run("unknown branch", func(t *testing.T) {
		_, err := repo.FindTeachersByBranch(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrBranchNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)

		var notFound *domain.BranchNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, 99, notFound.BranchID)
	})

	t.Run("branch without teachers", func(t *testing.T) {
		teachers, err := repo.FindTeachersByBranch(ctx, 5)
		require.NoError(t, err)
		assert.NotNil(t, teachers)
		assert.Empty(t, teachers)
	})

	t.Run("store order", func(t *testing.T) {
		teachers, err := repo.FindTeachersByBranch(ctx, 2)
		require.NoError(t, err)
		require.Len(t, teachers, 2)
		assert.Equal(t, 4, teachers[0].ID)
		assert.Equal(t, 7, teachers[1].ID)

		teachers, err = repo.FindTeachersByBranch(ctx, 1)
		require.NoError(t, err)
		require.Len(t, teachers, 1)
		assert.Equal(t, 7, teachers[0].ID)
	})
}

func TestTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("commit appends and advances counter once", func(t *testing.T) {
		repo := newRepo(t)

		tx, err := repo.Begin(ctx)
		require.NoError(t, err)
		assert.True(t, tx.BranchExists(1))
		assert.False(t, tx.BranchExists(3))
		assert.True(t, tx.EmailTaken("FIRST@example.com"))
		assert.False(t, tx.EmailTaken("new@example.com"))

		teacher := &model.Teacher{Name: "New", Email: "new@example.com", Branches: []int{1, 2}}
		id, err := tx.StageTeacher(teacher)
		require.NoError(t, err)
		assert.Equal(t, 8, id)
		assert.Equal(t, 8, teacher.ID)

		_, err = tx.StageTeacher(&model.Teacher{Email: "other@example.com"})
		assert.ErrorIs(t, err, repository.ErrAlreadyStaged)

		require.NoError(t, tx.Commit())
		assert.NoError(t, tx.Rollback(), "rollback after commit is a no-op")
		assert.ErrorIs(t, tx.Commit(), repository.ErrTxDone)

		assert.Equal(t, 9, repo.NextTeacherID(ctx))
		teachers, err := repo.ListTeachers(ctx)
		require.NoError(t, err)
		require.Len(t, teachers, 3)
		assert.Equal(t, "new@example.com", teachers[2].Email)
		assert.Equal(t, []int{1, 2}, teachers[2].Branches)
	})

	t.Run("rollback leaves state unchanged", func(t *testing.T) {
		repo := newRepo(t)

		tx, err := repo.Begin(ctx)
		require.NoError(t, err)
		_, err = tx.StageTeacher(&model.Teacher{Email: "new@example.com", Branches: []int{1}})
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())

		assert.Equal(t, 8, repo.NextTeacherID(ctx))
		teachers, err := repo.ListTeachers(ctx)
		require.NoError(t, err)
		assert.Len(t, teachers, 2)

		tx, err = repo.Begin(ctx)
		require.NoError(t, err)
		assert.False(t, tx.EmailTaken("new@example.com"))
		require.NoError(t, tx.Rollback())
	})

	t.Run("canceled context", func(t *testing.T) {
		repo := newRepo(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Begin(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	const writers = 50
	ids := make(chan int, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			tx, err := repo.Begin(ctx)
			if err != nil {
				t.Error(err)
				return
			}
			defer tx.Rollback()

			email := fmt.Sprintf("teacher%d@example.com", i%25)
			if tx.EmailTaken(email) {
				return
			}
			id, err := tx.StageTeacher(&model.Teacher{Email: email, Branches: []int{1}})
			if err != nil {
				t.Error(err)
				return
			}
			if err := tx.Commit(); err != nil {
				t.Error(err)
				return
			}
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := map[int]bool{}
	for id := range ids {
		assert.False(t, seen[id], "teacher ID %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, 25, "each distinct email is inserted exactly once")
	assert.Equal(t, 8+25, repo.NextTeacherID(ctx))
}
