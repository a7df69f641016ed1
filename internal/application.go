package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/service"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
	"github.com/rocketscienceinc/tictactoe-history/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-history/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the HTTP and WebSocket servers until a signal arrives or one of them fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if conf.Redis.GetRedisAddr() == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, conf.Redis)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.GameTTL)
	gameService := service.NewGameService(logger, gameRepo)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		httpErrCh <- rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameService))
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsErrCh <- websocket.New(logger, gameService).Start(ctx, conf.SocketPort)
	}()

	var runErr error
	pending := 2

	select {
	case err = <-httpErrCh:
		pending--
		if err != nil {
			runErr = fmt.Errorf("HTTP server error: %w", err)
		}
	case err = <-wsErrCh:
		pending--
		if err != nil {
			runErr = fmt.Errorf("WebSocket server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	cancel()

	// each channel receives exactly once, so wait for the servers still running
	for ; pending > 0; pending-- {
		select {
		case err = <-httpErrCh:
		case err = <-wsErrCh:
		}

		if err != nil {
			log.Error("server stopped with error", "error", err)
		}
	}

	return runErr
}

// RunLocal - plays a game on stdin/stdout without any storage.
func RunLocal(logger *slog.Logger, withBot bool) error {
	var bot service.BotService
	if withBot {
		bot = service.NewBotService()
	}

	if err := terminal.New(logger, os.Stdin, os.Stdout, bot).Run(); err != nil {
		return fmt.Errorf("local game failed: %w", err)
	}

	return nil
}
