package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type GameService interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error

	ApplyMove(ctx context.Context, id string, cell int) (*entity.Game, bool, error)
	JumpTo(ctx context.Context, id string, step int) (*entity.Game, error)
	ToggleMoveOrder(ctx context.Context, id string) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	logger   *slog.Logger
	gameRepo gameRepo
}

func NewGameService(logger *slog.Logger, gameRepo gameRepo) GameService {
	return &gameService{
		logger:   logger.With("component", "gameService"),
		gameRepo: gameRepo,
	}
}

func (that *gameService) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString())

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", id)

	return nil
}

// ApplyMove - ignored moves are not an error; the unchanged game is returned and nothing is saved.
func (that *gameService) ApplyMove(ctx context.Context, id string, cell int) (*entity.Game, bool, error) {
	log := that.logger.With("method", "ApplyMove", "gameID", id, "cell", cell)

	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, false, err
	}

	applied, err := game.ApplyMove(cell)
	if err != nil {
		return nil, false, fmt.Errorf("failed to apply move: %w", err)
	}

	if !applied {
		log.Debug("move ignored", "status", game.Status())
		return game, false, nil
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, false, err
	}

	log.Debug("move applied", "step", game.Step, "status", game.Status())

	return game, true, nil
}

func (that *gameService) JumpTo(ctx context.Context, id string, step int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = game.JumpTo(step); err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameService) ToggleMoveOrder(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	game.ToggleMoveOrder()

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gameService) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}
