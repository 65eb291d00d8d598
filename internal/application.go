package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/config"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository"
	"github.com/rocketscienceinc/tictactoe-client/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-client/internal/transport/rest"
	"github.com/rocketscienceinc/tictactoe-client/internal/ui"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	userID, err := identify(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not identify user: %w", err)
	}

	client := rest.NewClient(logger, conf.Server.URL, conf.Server.Timeout)
	session := usecase.NewSession()
	manager := usecase.NewGameManager(logger, client, session, conf.QuitTimeout)

	clock := clockwork.NewRealClock()
	sequencer := usecase.NewSequencer(logger, client, session, clock, conf.Startup.Attempts, conf.Startup.RetryDelay)
	poller := usecase.NewPoller(logger, client, session, clock, conf.PollInterval)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("could not init screen: %w", err)
	}

	screen.EnableMouse()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if runErr := sequencer.Run(groupCtx, userID); runErr != nil {
			if errors.Is(runErr, apperror.ErrNoConnection) || errors.Is(runErr, context.Canceled) {
				log.Warn("startup stopped", "error", runErr)
				return nil
			}

			return runErr
		}

		return nil
	})

	group.Go(func() error {
		return poller.Run(groupCtx)
	})

	log.Info("Starting client", "server", conf.Server.URL, "user_id", userID)

	uiErr := ui.New(logger, screen, manager, conf.FrameRate).Run(groupCtx)

	screen.Fini()
	cancel()

	if err = manager.Quit(ctx); err != nil {
		log.Error("could not leave game", "error", err)
	}

	if err = group.Wait(); err != nil {
		return fmt.Errorf("background task failed: %w", err)
	}

	log.Info("Client stopped")

	return uiErr
}

// identify - resolves the user id before the terminal is taken over, the operator may be prompted for it.
func identify(ctx context.Context, conf *config.Config) (entity.ID, error) {
	switch conf.Identity.Storage {
	case config.IdentityRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Identity.Redis.GetRedisAddr())
		if err != nil {
			return "", fmt.Errorf("could not connect to redis storage: %w", err)
		}
		defer func() { _ = redisStorage.Close() }()

		repo := repository.NewRedisIdentityRepository(redisStorage.Connection, conf.Identity.Key)

		return usecase.NewUserUseCase(repo, os.Stdin, os.Stdout).Identify(ctx)
	default:
		repo := repository.NewFileIdentityRepository(conf.Identity.Path)

		return usecase.NewUserUseCase(repo, os.Stdin, os.Stdout).Identify(ctx)
	}
}
