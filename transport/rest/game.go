package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type gameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	ApplyMove(ctx context.Context, id string, cell int) (*entity.Game, bool, error)
	JumpTo(ctx context.Context, id string, step int) (*entity.Game, error)
	ToggleMoveOrder(ctx context.Context, id string) (*entity.Game, error)
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Step *int `json:"step"`
}

type moveResponse struct {
	entity.GameView
	Applied bool `json:"applied"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type GameHandler struct {
	logger *slog.Logger
	games  gameService
}

func NewGameHandler(logger *slog.Logger, games gameService) *GameHandler {
	return &GameHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *GameHandler) CreateGame(ctx echo.Context) error {
	game, err := that.games.CreateGame(ctx.Request().Context())
	if err != nil {
		return that.sendError(ctx, "CreateGame", err)
	}

	return ctx.JSON(http.StatusCreated, game.View())
}

func (that *GameHandler) GetGame(ctx echo.Context) error {
	game, err := that.games.GetGame(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.sendError(ctx, "GetGame", err)
	}

	return ctx.JSON(http.StatusOK, game.View())
}

func (that *GameHandler) DeleteGame(ctx echo.Context) error {
	if err := that.games.DeleteGame(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return that.sendError(ctx, "DeleteGame", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func (that *GameHandler) ApplyMove(ctx echo.Context) error {
	var req moveRequest
	if err := ctx.Bind(&req); err != nil || req.Cell == nil {
		return that.sendError(ctx, "ApplyMove", fmt.Errorf("%w: cell is required", apperror.ErrInvalidInput))
	}

	game, applied, err := that.games.ApplyMove(ctx.Request().Context(), ctx.Param("id"), *req.Cell)
	if err != nil {
		return that.sendError(ctx, "ApplyMove", err)
	}

	return ctx.JSON(http.StatusOK, moveResponse{GameView: game.View(), Applied: applied})
}

func (that *GameHandler) JumpTo(ctx echo.Context) error {
	var req jumpRequest
	if err := ctx.Bind(&req); err != nil || req.Step == nil {
		return that.sendError(ctx, "JumpTo", fmt.Errorf("%w: step is required", apperror.ErrInvalidInput))
	}

	game, err := that.games.JumpTo(ctx.Request().Context(), ctx.Param("id"), *req.Step)
	if err != nil {
		return that.sendError(ctx, "JumpTo", err)
	}

	return ctx.JSON(http.StatusOK, game.View())
}

func (that *GameHandler) ToggleMoveOrder(ctx echo.Context) error {
	game, err := that.games.ToggleMoveOrder(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return that.sendError(ctx, "ToggleMoveOrder", err)
	}

	return ctx.JSON(http.StatusOK, game.View())
}

func (that *GameHandler) sendError(ctx echo.Context, method string, err error) error {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		return ctx.JSON(code, errorResponse{Error: http.StatusText(code)})
	}

	that.logger.Debug("request rejected", "method", method, "error", err)

	return ctx.JSON(code, errorResponse{Error: err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidCell),
		errors.Is(err, entity.ErrInvalidStep):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
