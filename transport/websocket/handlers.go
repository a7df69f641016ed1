package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	game, err := that.games.CreateGame(ctx)
	if err != nil {
		return that.sendServiceError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game, nil)
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, ok, err := that.readPayload(conn, msg)
	if !ok {
		return err
	}

	game, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return that.sendServiceError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game, nil)
}

func (that *Server) handleMove(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, ok, err := that.readPayload(conn, msg)
	if !ok {
		return err
	}

	if req.Cell == nil {
		return that.sendErrorResponse(conn, msg.Action, "cell is required")
	}

	game, applied, err := that.games.ApplyMove(ctx, req.GameID, *req.Cell)
	if err != nil {
		return that.sendServiceError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game, &applied)
}

func (that *Server) handleJump(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, ok, err := that.readPayload(conn, msg)
	if !ok {
		return err
	}

	if req.Step == nil {
		return that.sendErrorResponse(conn, msg.Action, "step is required")
	}

	game, err := that.games.JumpTo(ctx, req.GameID, *req.Step)
	if err != nil {
		return that.sendServiceError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game, nil)
}

func (that *Server) handleOrder(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	req, ok, err := that.readPayload(conn, msg)
	if !ok {
		return err
	}

	game, err := that.games.ToggleMoveOrder(ctx, req.GameID)
	if err != nil {
		return that.sendServiceError(conn, msg.Action, err)
	}

	return that.sendGame(conn, msg.Action, game, nil)
}

// readPayload - decodes the request payload. When ok is false the client has
// already been answered and err is the result of that write.
func (that *Server) readPayload(conn *websocket.Conn, msg *Message) (Payload, bool, error) {
	var payload Payload

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		that.logger.Debug("failed to unmarshal payload", "action", msg.Action, "error", err)
		return payload, false, that.sendErrorResponse(conn, msg.Action, "malformed payload")
	}

	if payload.GameID == "" {
		return payload, false, that.sendErrorResponse(conn, msg.Action, "game_id is required")
	}

	return payload, true, nil
}

func (that *Server) sendGame(conn *websocket.Conn, action string, game *entity.Game, applied *bool) error {
	view := game.View()

	return that.sendMessage(conn, action, Payload{
		GameID:  game.ID,
		Game:    &view,
		Applied: applied,
	})
}

func (that *Server) sendServiceError(conn *websocket.Conn, action string, err error) error {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return that.sendErrorResponse(conn, action, apperror.ErrGameNotFound.Error())
	case errors.Is(err, entity.ErrInvalidCell), errors.Is(err, entity.ErrInvalidStep):
		return that.sendErrorResponse(conn, action, err.Error())
	default:
		that.logger.Error("failed to process message", "action", action, "error", err)
		return that.sendErrorResponse(conn, action, "internal error")
	}
}
