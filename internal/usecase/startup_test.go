package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	startupAttempts = 5
	retryDelay      = time.Second
)

func newTestSequencer(t *testing.T) (*Sequencer, *Session, *mockGameAPI, *clockwork.FakeClock) {
	t.Helper()

	session := NewSession()
	api := newMockGameAPI(t)
	clock := clockwork.NewFakeClock()

	return NewSequencer(suite.Logger(), api, session, clock, startupAttempts, retryDelay), session, api, clock
}

func TestSequencer_Run(t *testing.T) {
	t.Run("Gives up after exactly five attempts", func(t *testing.T) {
		// Given: a server that never answers
		sequencer, session, api, clock := newTestSequencer(t)
		api.On("GetUser", mock.Anything, myID).Return(nil, apperror.ErrTransport).Times(startupAttempts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- sequencer.Run(ctx, myID)
		}()

		// When: every retry delay elapses
		for range startupAttempts - 1 {
			require.NoError(t, clock.BlockUntilContext(ctx, 1))
			clock.Advance(retryDelay)
		}

		// Then: the sequencer reports no connection
		select {
		case err := <-done:
			require.ErrorIs(t, err, apperror.ErrNoConnection)
		case <-ctx.Done():
			t.Fatal("sequencer did not finish")
		}

		assert.Equal(t, StateNoConnection, session.State())
		api.AssertNumberOfCalls(t, "GetUser", startupAttempts)
	})

	t.Run("Loads user, rating and stays in MENU without active game", func(t *testing.T) {
		sequencer, session, api, _ := newTestSequencer(t)
		rating := []entity.Rating{{Username: "bob", Wins: 4}}

		api.On("GetUser", mock.Anything, myID).Return(&me, nil).Once()
		api.On("GetRating", mock.Anything).Return(rating, nil).Once()
		api.On("GetActiveGame", mock.Anything, myID).Return(nil, apperror.ErrStatus).Once()

		err := sequencer.Run(context.Background(), myID)

		require.NoError(t, err)
		snapshot := session.Snapshot()
		assert.Equal(t, StateMenu, snapshot.State)
		assert.Equal(t, &me, snapshot.User)
		assert.Equal(t, rating, snapshot.Rating)
	})

	t.Run("Resumes an active game", func(t *testing.T) {
		// Given: the user crashed in the middle of a game
		sequencer, session, api, _ := newTestSequencer(t)

		api.On("GetUser", mock.Anything, myID).Return(&me, nil).Once()
		api.On("GetRating", mock.Anything).Return(nil, apperror.ErrTransport).Once()
		api.On("GetActiveGame", mock.Anything, myID).
			Return(gameInfo("g9", entity.StatusActive, entity.SignO, entity.Move{Row: 0, Col: 1, Sign: entity.SignX}), nil).
			Once()

		// When: starting up
		err := sequencer.Run(context.Background(), myID)

		// Then: the game is running again with its board
		require.NoError(t, err)
		snapshot := session.Snapshot()
		assert.Equal(t, StateGameRunning, snapshot.State)
		assert.Equal(t, entity.SignX, snapshot.Board[0][1])
		assert.True(t, snapshot.CanMove)
		assert.Nil(t, snapshot.Rating)
	})

	t.Run("Succeeds on a later attempt", func(t *testing.T) {
		sequencer, session, api, clock := newTestSequencer(t)

		api.On("GetUser", mock.Anything, myID).Return(nil, apperror.ErrTransport).Twice()
		api.On("GetUser", mock.Anything, myID).Return(&me, nil).Once()
		api.On("GetRating", mock.Anything).Return([]entity.Rating{}, nil).Once()
		api.On("GetActiveGame", mock.Anything, myID).Return(nil, apperror.ErrStatus).Once()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- sequencer.Run(ctx, myID)
		}()

		for range 2 {
			require.NoError(t, clock.BlockUntilContext(ctx, 1))
			clock.Advance(retryDelay)
		}

		require.NoError(t, <-done)
		assert.Equal(t, StateMenu, session.State())
		assert.NotNil(t, session.Snapshot().User)
	})

	t.Run("Stops waiting when cancelled", func(t *testing.T) {
		sequencer, session, api, clock := newTestSequencer(t)
		api.On("GetUser", mock.Anything, myID).Return(nil, apperror.ErrTransport).Once()

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- sequencer.Run(ctx, myID)
		}()

		require.NoError(t, clock.BlockUntilContext(ctx, 1))
		cancel()

		assert.ErrorIs(t, <-done, context.Canceled)
		assert.Equal(t, StateMenu, session.State())
	})
}
