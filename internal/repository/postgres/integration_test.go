//go:build integration

package postgres_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/akorchagin/taskvault/internal/model"
	repo "github.com/akorchagin/taskvault/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "taskvault_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/taskvault_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	now := time.Now()
	return model.User{
		ID:           uuid.New(),
		Name:         "Ann",
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func digest(s string) []byte {
	h := sha256.Sum256([]byte(s))
	return h[:]
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)

	created, err := users.Create(ctx, newUser("Ann@X.com"))
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", created.Email)
	assert.Nil(t, created.RefreshTokenHash)

	t.Run("lookup is case-insensitive", func(t *testing.T) {
		got, err := users.GetByEmail(ctx, "ANN@x.COM")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := users.Create(ctx, newUser("ann@x.com"))
		require.ErrorIs(t, err, model.ErrEmailTaken)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := users.GetByEmail(ctx, "nobody@x.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Email, got.Email)

		_, err = users.GetByID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUserRepository_RefreshTokenLifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)

	created, err := users.Create(ctx, newUser("lifecycle@x.com"))
	require.NoError(t, err)

	first := digest("refresh-1")
	second := digest("refresh-2")

	require.NoError(t, users.SetRefreshToken(ctx, created.ID, first))

	got, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got.RefreshTokenHash)

	t.Run("rotate replaces matching digest", func(t *testing.T) {
		require.NoError(t, users.RotateRefreshToken(ctx, created.ID, first, second))

		got, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, second, got.RefreshTokenHash)
	})

	t.Run("stale rotation fails", func(t *testing.T) {
		err := users.RotateRefreshToken(ctx, created.ID, first, digest("refresh-3"))
		require.ErrorIs(t, err, model.ErrRefreshMismatch)
	})

	t.Run("clear then rotate fails", func(t *testing.T) {
		require.NoError(t, users.ClearRefreshToken(ctx, created.ID))

		got, err := users.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, got.RefreshTokenHash)

		err = users.RotateRefreshToken(ctx, created.ID, second, digest("refresh-4"))
		require.ErrorIs(t, err, model.ErrRefreshMismatch)
	})

	t.Run("clear unknown user", func(t *testing.T) {
		err := users.ClearRefreshToken(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUserRepository_ConcurrentRotation(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)

	created, err := users.Create(ctx, newUser("race@x.com"))
	require.NoError(t, err)

	old := digest("refresh-old")
	require.NoError(t, users.SetRefreshToken(ctx, created.ID, old))

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = users.RotateRefreshToken(ctx, created.ID, old, digest(fmt.Sprintf("refresh-new-%d", i)))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, model.ErrRefreshMismatch)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent rotation must win")
}

func TestTodoRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	users := repo.NewUserRepository(conn)
	todos := repo.NewTodoRepository(conn)

	owner, err := users.Create(ctx, newUser("todos@x.com"))
	require.NoError(t, err)
	stranger, err := users.Create(ctx, newUser("stranger@x.com"))
	require.NoError(t, err)

	now := time.Now().Truncate(time.Millisecond)
	created, err := todos.Create(ctx, model.Todo{
		ID:        uuid.New(),
		UserID:    owner.ID,
		Title:     "write report",
		Status:    model.TodoStatusPending,
		Priority:  model.TodoPriorityHigh,
		StartDate: now.Add(-48 * time.Hour),
		EndDate:   now.Add(-24 * time.Hour),
	})
	require.NoError(t, err)

	t.Run("scoped to owner", func(t *testing.T) {
		_, err := todos.GetByID(ctx, stranger.ID, created.ID)
		require.ErrorIs(t, err, model.ErrNotFound)

		got, err := todos.GetByID(ctx, owner.ID, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "write report", got.Title)
	})

	t.Run("list newest first", func(t *testing.T) {
		_, err := todos.Create(ctx, model.Todo{
			ID:        uuid.New(),
			UserID:    owner.ID,
			Title:     "newer task",
			Status:    model.TodoStatusPending,
			Priority:  model.TodoPriorityLow,
			StartDate: now,
			EndDate:   now.Add(24 * time.Hour),
		})
		require.NoError(t, err)

		list, err := todos.GetByUserID(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "newer task", list[0].Title)
	})

	t.Run("overdue excludes completed", func(t *testing.T) {
		overdue, err := todos.GetOverdue(ctx, owner.ID, now)
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, created.ID, overdue[0].ID)

		completed := overdue[0]
		completed.IsCompleted = true
		completedAt := now
		completed.CompletedAt = &completedAt
		_, err = todos.Update(ctx, completed)
		require.NoError(t, err)

		overdue, err = todos.GetOverdue(ctx, owner.ID, now)
		require.NoError(t, err)
		assert.Empty(t, overdue)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, todos.Delete(ctx, owner.ID, created.ID))
		require.ErrorIs(t, todos.Delete(ctx, owner.ID, created.ID), model.ErrNotFound)
	})
}
