package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

type gameUseCase interface {
	NewGame(ctx context.Context, first, aiPlayer entity.Player, strategyID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID string, row, col int, player entity.Player) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	MoveStateless(ctx context.Context, board *entity.Board, row, col int, player entity.Player, strategyID string) (*entity.Game, error)
	LogGame(ctx context.Context, moves []entity.Move, insights []string) (*entity.GameLog, error)
}

type strategyCatalog interface {
	IDs() []string
}

// maxMoveBodyBytes caps a stateless move request.
const maxMoveBodyBytes = 4 << 10

type handlers struct {
	logger     *slog.Logger
	games      gameUseCase
	strategies strategyCatalog
}

type newGameRequest struct {
	FirstPlayer string `json:"firstPlayer"`
	StrategyID  string `json:"strategyId"`
	AIPlayer    string `json:"aiPlayer"`
}

type moveRequest struct {
	Board         *entity.Board `json:"board"`
	Row           *int          `json:"row"`
	Col           *int          `json:"col"`
	CurrentPlayer string        `json:"currentPlayer"`
	StrategyID    string        `json:"strategyId"`
}

type sessionMoveRequest struct {
	Row    *int   `json:"row"`
	Col    *int   `json:"col"`
	Player string `json:"player"`
}

// moveRecord - one entry of the move history a client reports, extra fields are ignored.
type moveRecord struct {
	Move struct {
		Row int `json:"row"`
		Col int `json:"col"`
	} `json:"move"`
	CurrentPlayer entity.Player `json:"currentPlayer"`
}

type logGameRequest struct {
	MoveHistory []moveRecord `json:"moveHistory"`
	Insights    []string     `json:"insights"`
}

type strategiesResponse struct {
	Strategies []string `json:"strategies"`
}

func (that *handlers) listStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, strategiesResponse{Strategies: that.strategies.IDs()})
}

func (that *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	first, err := parseOptionalPlayer(req.FirstPlayer)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	aiPlayer, err := parseOptionalPlayer(req.AIPlayer)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.games.NewGame(r.Context(), first, aiPlayer, req.StrategyID)
	if err != nil {
		that.fail(w, "newGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game.View())
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMoveBodyBytes)

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Board == nil || req.Row == nil || req.Col == nil {
		writeError(w, http.StatusBadRequest, "board, row and col are required")
		return
	}

	player, err := entity.ParsePlayer(req.CurrentPlayer)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.games.MoveStateless(r.Context(), req.Board, *req.Row, *req.Col, player, req.StrategyID)
	if err != nil {
		that.fail(w, "move", err)
		return
	}

	writeJSON(w, http.StatusOK, game.View())
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, "getGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game.View())
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.fail(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req sessionMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Row == nil || req.Col == nil {
		writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	player, err := entity.ParsePlayer(req.Player)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Row, *req.Col, player)
	if err != nil {
		that.fail(w, "makeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, game.View())
}

func (that *handlers) logGame(w http.ResponseWriter, r *http.Request) {
	var req logGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moves := make([]entity.Move, 0, len(req.MoveHistory))
	for _, record := range req.MoveHistory {
		moves = append(moves, entity.Move{Row: record.Move.Row, Col: record.Move.Col, Player: record.CurrentPlayer})
	}

	gameLog, err := that.games.LogGame(r.Context(), moves, req.Insights)
	if err != nil {
		that.logger.With("method", "logGame").Error("failed to save game log", "error", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save game log: %v", err))
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "Game log saved successfully", ID: gameLog.ID})
}

// fail - maps err to a status, only server-side failures are logged.
func (that *handlers) fail(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.With("method", method).Error("request failed", "error", err)
		writeError(w, status, "Internal Server Error")
		return
	}

	writeError(w, status, err.Error())
}

func parseOptionalPlayer(value string) (entity.Player, error) {
	if value == "" {
		return "", nil
	}

	return entity.ParsePlayer(value)
}
