package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Handle(ctx context.Context, cmd commands.SweepOrphanOrdersCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func sweepCommand(t *testing.T) commands.SweepOrphanOrdersCommand {
	t.Helper()
	cmd, err := commands.NewSweepOrphanOrdersCommand(10*time.Minute, 25)
	require.NoError(t, err)
	return cmd
}

func TestOrphanOrderSweepJob_RunOnce(t *testing.T) {
	t.Run("passes the configured command with a deadline", func(t *testing.T) {
		sweeper := new(MockSweeper)
		cmd := sweepCommand(t)
		sweeper.On("Handle", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), cmd).Return(3, nil).Once()

		job := jobs.NewOrphanOrderSweepJob(sweeper, cmd, slog.New(slog.DiscardHandler))

		assert.Equal(t, 3, job.RunOnce(t.Context()))
		sweeper.AssertExpectations(t)
	})

	t.Run("a failed sweep reports nothing removed", func(t *testing.T) {
		sweeper := new(MockSweeper)
		sweeper.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("connection refused")).Once()

		job := jobs.NewOrphanOrderSweepJob(sweeper, sweepCommand(t), slog.New(slog.DiscardHandler))

		assert.Zero(t, job.RunOnce(t.Context()))
	})
}

func TestJobManager_StartStop(t *testing.T) {
	manager := jobs.NewJobManager(new(MockSweeper), sweepCommand(t), slog.New(slog.DiscardHandler))

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
