package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	first, err := parseOptionalPlayer(payloadReq.FirstPlayer)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	aiPlayer, err := parseOptionalPlayer(payloadReq.AIPlayer)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	game, err := that.games.NewGame(ctx, first, aiPlayer, payloadReq.StrategyID)
	if err != nil {
		log.Error("failed to create game", "error", err)
		return conn.sendError(msg.Action, "failed to create a new game")
	}

	log.Info("game started", "gameID", game.ID)

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	if payloadReq.GameID == "" || payloadReq.Row == nil || payloadReq.Col == nil {
		return conn.sendError(msg.Action, "gameId, row and col are required")
	}

	player, err := entity.ParsePlayer(payloadReq.Player)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	game, err := that.games.MakeMove(ctx, payloadReq.GameID, *payloadReq.Row, *payloadReq.Col, player)
	if err != nil {
		log.Info("turn rejected", "gameID", payloadReq.GameID, "error", err)
		return conn.sendError(msg.Action, fmt.Sprintf("game %s: %v", payloadReq.GameID, err))
	}

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *connection) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, err.Error())
	}

	game, err := that.games.GetGame(ctx, payloadReq.GameID)
	if err != nil {
		return conn.sendError(msg.Action, fmt.Sprintf("game %s: %v", payloadReq.GameID, err))
	}

	return that.sendGame(conn, msg.Action, game)
}

func (that *Server) sendGame(conn *connection, action string, game *entity.Game) error {
	view := game.View()

	if err := conn.send(action, ResponsePayload{Game: &view}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func parseOptionalPlayer(value string) (entity.Player, error) {
	if value == "" {
		return "", nil
	}

	return entity.ParsePlayer(value)
}
