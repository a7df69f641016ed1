package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - builds the echo instance with every HTTP route registered.
func NewRouter(logger *slog.Logger, games gameService) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.Use(middleware.Recover())

	router.GET("/ping", NewPingHandler().PingHandler)

	handler := NewGameHandler(logger, games)
	router.POST("/games", handler.CreateGame)
	router.GET("/games/:id", handler.GetGame)
	router.DELETE("/games/:id", handler.DeleteGame)
	router.POST("/games/:id/moves", handler.ApplyMove)
	router.POST("/games/:id/jump", handler.JumpTo)
	router.POST("/games/:id/order", handler.ToggleMoveOrder)

	return router
}

// Start - serves the router on port until ctx is canceled.
func Start(ctx context.Context, port string, router *echo.Echo) error {
	router.Server.ReadTimeout = 10 * time.Second
	router.Server.WriteTimeout = 10 * time.Second
	router.Server.IdleTimeout = 30 * time.Second

	errCh := make(chan error, 1)
	go func() {
		if err := router.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := router.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
