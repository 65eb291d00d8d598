package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

// Sequencer - loads the user on launch and restores a game left running by a previous run.
type Sequencer struct {
	logger   *slog.Logger
	api      gameAPI
	session  *Session
	clock    clockwork.Clock
	attempts int
	delay    time.Duration
}

func NewSequencer(logger *slog.Logger, api gameAPI, session *Session, clock clockwork.Clock, attempts int, delay time.Duration) *Sequencer {
	return &Sequencer{
		logger:   logger.With("component", "sequencer"),
		api:      api,
		session:  session,
		clock:    clock,
		attempts: attempts,
		delay:    delay,
	}
}

// Run - tries to load userID a bounded number of times. On exhaustion the session
// is switched to NO_CONNECTION and apperror.ErrNoConnection is returned.
func (that *Sequencer) Run(ctx context.Context, userID entity.ID) error {
	log := that.logger.With("method", "Run", "user_id", userID)

	for attempt := 1; attempt <= that.attempts; attempt++ {
		user, err := that.api.GetUser(ctx, userID)
		if err == nil {
			that.session.SetUser(*user)
			log.Info("user loaded", "username", user.Username)

			that.warmUp(ctx, log, user)

			return nil
		}

		log.Error("failed to load user", "attempt", attempt, "attempts", that.attempts, "error", err)

		if attempt == that.attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-that.clock.After(that.delay):
		}
	}

	that.session.Disconnect()
	log.Error("could not load user, check the connection to the server")

	return apperror.ErrNoConnection
}

func (that *Sequencer) warmUp(ctx context.Context, log *slog.Logger, user *entity.User) {
	rating, err := that.api.GetRating(ctx)
	if err != nil {
		log.Error("failed to preload rating", "error", err)
	} else {
		that.session.SetRating(rating)
	}

	info, err := that.api.GetActiveGame(ctx, user.ID)
	if err != nil {
		log.Debug("no active game to resume", "error", err)
		return
	}

	if that.session.Resume(info) {
		log.Info("resumed game", "game_id", info.Game.ID, "state", that.session.State())
	}
}
