package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// Poller - refreshes the session from the server on a fixed interval.
type Poller struct {
	logger   *slog.Logger
	api      gameAPI
	session  *Session
	clock    clockwork.Clock
	interval time.Duration
}

func NewPoller(logger *slog.Logger, api gameAPI, session *Session, clock clockwork.Clock, interval time.Duration) *Poller {
	return &Poller{
		logger:   logger.With("component", "poller"),
		api:      api,
		session:  session,
		clock:    clock,
		interval: interval,
	}
}

// Run - polls until ctx is cancelled. Failures never stop the loop and there is no backoff.
func (that *Poller) Run(ctx context.Context) error {
	ticker := that.clock.NewTicker(that.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
			that.Poll(ctx)
		}
	}
}

// Poll - one network read for the current state.
func (that *Poller) Poll(ctx context.Context) {
	log := that.logger.With("method", "Poll")

	target := that.session.PollTarget()

	switch target.State {
	case StateGameWaiting:
		if target.GameID.IsZero() {
			info, err := that.api.JoinGame(ctx, target.UserID)
			if err != nil {
				log.Debug("no game to join yet", "error", err)
				return
			}

			that.session.ApplyGame(info)
			log.Info("joined game", "game_id", info.Game.ID, "players", len(info.Players))

			return
		}

		that.refreshGame(ctx, log, target)
	case StateGameRunning:
		that.refreshGame(ctx, log, target)
	case StateRating:
		if !that.session.NeedsRating() {
			return
		}

		rating, err := that.api.GetRating(ctx)
		if err != nil {
			log.Error("failed to refresh rating", "error", err)
			return
		}

		that.session.SetRating(rating)
	case StateMenu, StateGameFinished, StateNoConnection:
	}
}

func (that *Poller) refreshGame(ctx context.Context, log *slog.Logger, target PollTarget) {
	info, err := that.api.GetGameInfo(ctx, target.GameID)
	if err != nil {
		log.Error("failed to refresh game", "game_id", target.GameID, "error", err)
		return
	}

	if !that.session.ApplyGame(info) {
		return
	}

	if state := that.session.State(); state != target.State {
		log.Info("game state changed", "game_id", info.Game.ID, "from", target.State, "to", state)
	}
}
