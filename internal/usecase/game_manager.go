package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type gameAPI interface {
	GetUser(ctx context.Context, userID entity.ID) (*entity.User, error)
	GetActiveGame(ctx context.Context, userID entity.ID) (*entity.GameInfo, error)
	JoinGame(ctx context.Context, userID entity.ID) (*entity.GameInfo, error)
	GetGameInfo(ctx context.Context, gameID entity.ID) (*entity.GameInfo, error)
	MakeMove(ctx context.Context, userID, gameID entity.ID, move entity.Move) (*entity.Move, error)
	GetRating(ctx context.Context) ([]entity.Rating, error)
	LeaveGame(ctx context.Context, userID, gameID entity.ID) error
}

// GameManager - everything the renderer may ask for. Network calls never run on the caller's goroutine,
// except the final leave on Quit.
type GameManager struct {
	logger  *slog.Logger
	api     gameAPI
	session *Session

	quitTimeout time.Duration
	inflight    sync.WaitGroup
}

func NewGameManager(logger *slog.Logger, api gameAPI, session *Session, quitTimeout time.Duration) *GameManager {
	return &GameManager{
		logger:  logger.With("component", "game-manager"),
		api:     api,
		session: session,

		quitTimeout: quitTimeout,
	}
}

func (that *GameManager) Snapshot() Snapshot {
	return that.session.Snapshot()
}

func (that *GameManager) Play() bool {
	if !that.session.Play() {
		return false
	}

	that.logger.Info("waiting for game")

	return true
}

func (that *GameManager) OpenRating() bool {
	return that.session.OpenRating()
}

func (that *GameManager) Escape() bool {
	return that.session.Escape()
}

// MakeMove - marks the cell locally and submits the move in the background.
// A rejected or lost move is left for the next poll to correct.
func (that *GameManager) MakeMove(ctx context.Context, row, col int) error {
	log := that.logger.With("method", "MakeMove")

	gameID, move, err := that.session.PlaceMove(row, col)
	if err != nil {
		return fmt.Errorf("failed to place move: %w", err)
	}

	userID := that.session.PollTarget().UserID

	// the move outlives a cancelled app context so Quit can wait for it before leaving the game
	moveCtx := context.WithoutCancel(ctx)

	that.inflight.Add(1)
	go func() {
		defer that.inflight.Done()

		accepted, err := that.api.MakeMove(moveCtx, userID, gameID, move)
		if err != nil {
			log.Error("failed to submit move", "game_id", gameID, "row", move.Row, "col", move.Col, "error", err)
			return
		}

		that.session.ApplyMove(gameID, *accepted)
		log.Debug("move accepted", "game_id", gameID, "row", accepted.Row, "col", accepted.Col)
	}()

	return nil
}

// Quit - waits for submitted moves, then leaves an unfinished game. Bounded by the quit timeout.
func (that *GameManager) Quit(ctx context.Context) error {
	log := that.logger.With("method", "Quit")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.quitTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		that.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Warn("moves still in flight on quit")
	}

	userID, gameID, ok := that.session.LeaveTarget()
	if !ok {
		return nil
	}

	if err := that.api.LeaveGame(ctx, userID, gameID); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn("leave game timed out", "game_id", gameID)
		}

		return fmt.Errorf("failed to leave game %s: %w", gameID, err)
	}

	log.Info("left game", "game_id", gameID)

	return nil
}
