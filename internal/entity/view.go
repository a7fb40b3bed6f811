package entity

// GameStateView is the shape handed to the boundary layer.
type GameStateView struct {
	GameID        string     `json:"gameId,omitempty"`
	Board         [][]Cell   `json:"board"`
	CurrentPlayer Player     `json:"currentPlayer"`
	Winner        *Player    `json:"winner"`
	WinningCells  []Position `json:"winningCells"`
	GameEnded     bool       `json:"gameEnded"`
	Status        Status     `json:"status"`
	StrategyID    string     `json:"strategyId,omitempty"`
	AIPlayer      Player     `json:"aiPlayer,omitempty"`
}

func (that *Game) View() GameStateView {
	view := GameStateView{
		GameID:        that.ID,
		Board:         that.Board.Rows(),
		CurrentPlayer: that.Turn,
		WinningCells:  make([]Position, 0, len(that.WinningLine)),
		GameEnded:     that.IsFinished(),
		Status:        that.Status,
		StrategyID:    that.StrategyID,
		AIPlayer:      that.AIPlayer,
	}

	if that.Status == StatusWon {
		winner := that.Winner
		view.Winner = &winner
		view.WinningCells = append(view.WinningCells, that.WinningLine...)
	}

	return view
}
