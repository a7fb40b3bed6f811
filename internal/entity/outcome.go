package entity

// Outcome is the result of scanning a board for a completed line.
type Outcome struct {
	Winner Player
	Line   []Position
}

func (that Outcome) HasWinner() bool {
	return that.Winner != ""
}

// Evaluate - looks for a completed line.
// Rows are checked first, then columns, then the main diagonal and the anti-diagonal;
// only the first completed line is reported.
func Evaluate(board *Board) Outcome {
	n := board.size

	for row := 0; row < n; row++ {
		if winner, ok := lineOwner(board, func(i int) (int, int) { return row, i }); ok {
			return Outcome{Winner: winner, Line: collectLine(n, func(i int) (int, int) { return row, i })}
		}
	}

	for col := 0; col < n; col++ {
		if winner, ok := lineOwner(board, func(i int) (int, int) { return i, col }); ok {
			return Outcome{Winner: winner, Line: collectLine(n, func(i int) (int, int) { return i, col })}
		}
	}

	mainDiagonal := func(i int) (int, int) { return i, i }
	if winner, ok := lineOwner(board, mainDiagonal); ok {
		return Outcome{Winner: winner, Line: collectLine(n, mainDiagonal)}
	}

	antiDiagonal := func(i int) (int, int) { return i, n - 1 - i }
	if winner, ok := lineOwner(board, antiDiagonal); ok {
		return Outcome{Winner: winner, Line: collectLine(n, antiDiagonal)}
	}

	return Outcome{}
}

// lineOwner - reports the player holding every cell of the line.
func lineOwner(board *Board, cellAt func(i int) (int, int)) (Player, bool) {
	first := board.at(cellAt(0))
	if first == EmptyCell {
		return "", false
	}

	for i := 1; i < board.size; i++ {
		if board.at(cellAt(i)) != first {
			return "", false
		}
	}

	return first.Player()
}

func collectLine(n int, cellAt func(i int) (int, int)) []Position {
	line := make([]Position, n)
	for i := range line {
		line[i].Row, line[i].Col = cellAt(i)
	}

	return line
}
