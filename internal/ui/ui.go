package ui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
)

type gameManager interface {
	Snapshot() usecase.Snapshot
	Play() bool
	OpenRating() bool
	Escape() bool
	MakeMove(ctx context.Context, row, col int) error
}

// UI - terminal front-end. It only reads session snapshots and forwards input to the game manager.
type UI struct {
	logger  *slog.Logger
	screen  tcell.Screen
	manager gameManager
	frame   time.Duration

	pressed bool
}

func New(logger *slog.Logger, screen tcell.Screen, manager gameManager, frameRate int) *UI {
	if frameRate < 1 {
		frameRate = 1
	}

	return &UI{
		logger:  logger.With("component", "ui"),
		screen:  screen,
		manager: manager,
		frame:   time.Second / time.Duration(frameRate),
	}
}

// Run - draws and handles input until the user quits or ctx is cancelled. The caller owns the screen lifecycle.
func (that *UI) Run(ctx context.Context) error {
	events := make(chan tcell.Event)

	go func() {
		defer close(events)

		for {
			event := that.screen.PollEvent()
			if event == nil {
				return
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(that.frame)
	defer ticker.Stop()

	that.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			that.Draw()
		case event, ok := <-events:
			if !ok {
				return nil
			}

			if that.handle(ctx, event) {
				return nil
			}

			that.Draw()
		}
	}
}

// handle - reacts to one event, reports whether the user asked to quit.
func (that *UI) handle(ctx context.Context, event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventResize:
		that.screen.Sync()
	case *tcell.EventKey:
		return that.handleKey(ctx, ev)
	case *tcell.EventMouse:
		return that.handleMouse(ctx, ev)
	}

	return false
}

func (that *UI) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}

	snapshot := that.manager.Snapshot()

	if ev.Key() == tcell.KeyEscape {
		that.manager.Escape()
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch snapshot.State {
	case usecase.StateMenu:
		return that.pressMenu(ev.Rune())
	case usecase.StateGameRunning:
		if ev.Rune() >= '1' && ev.Rune() <= '9' {
			cell := int(ev.Rune() - '1')
			that.move(ctx, cell/entity.BoardSize, cell%entity.BoardSize)
		}
	case usecase.StateNoConnection:
		return ev.Rune() == 'q'
	case usecase.StateGameWaiting, usecase.StateGameFinished, usecase.StateRating:
	}

	return false
}

func (that *UI) handleMouse(ctx context.Context, ev *tcell.EventMouse) bool {
	down := ev.Buttons()&tcell.Button1 != 0
	click := down && !that.pressed
	that.pressed = down

	if !click {
		return false
	}

	x, y := ev.Position()

	switch that.manager.Snapshot().State {
	case usecase.StateMenu:
		for _, button := range menuButtons {
			if button.hit(x, y) {
				return that.pressMenu(button.key)
			}
		}
	case usecase.StateGameRunning:
		if row, col, ok := cellAt(x, y); ok {
			that.move(ctx, row, col)
		}
	case usecase.StateGameWaiting, usecase.StateGameFinished, usecase.StateRating, usecase.StateNoConnection:
	}

	return false
}

func (that *UI) pressMenu(key rune) bool {
	switch key {
	case keyPlay:
		that.manager.Play()
	case keyRating:
		that.manager.OpenRating()
	case keyQuit:
		return true
	}

	return false
}

func (that *UI) move(ctx context.Context, row, col int) {
	err := that.manager.MakeMove(ctx, row, col)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrCellOccupied):
		that.logger.Debug("move ignored", "row", row, "col", col, "error", err)
	default:
		that.logger.Error("failed to make move", "row", row, "col", col, "error", err)
	}
}
