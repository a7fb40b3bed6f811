package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// DefaultBoardSize is the only size full-depth search is tractable for.
const DefaultBoardSize = 3

var ErrInvalidBoardSize = errors.New("invalid board size")

// Position addresses one cell of the board.
type Position struct {
	Row int
	Col int
}

// MarshalJSON - encodes a position as a [row, col] pair.
func (that Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Row, that.Col})
}

func (that *Position) UnmarshalJSON(data []byte) error {
	var pair [2]int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to unmarshal position: %w", err)
	}

	that.Row, that.Col = pair[0], pair[1]

	return nil
}

// Board is a fixed n×n grid stored row-major.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}

	return &Board{
		size:  size,
		cells: make([]Cell, size*size),
	}, nil
}

// BoardFromRows - builds a board from a square grid of cells.
func BoardFromRows(rows [][]Cell) (*Board, error) {
	board, err := NewBoard(len(rows))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidBoard, err)
	}

	for row, cells := range rows {
		if len(cells) != board.size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidBoard, row, len(cells), board.size)
		}

		for col, cell := range cells {
			switch cell {
			case EmptyCell, CellX, CellO:
				board.cells[board.index(row, col)] = cell
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at (%d, %d)", apperror.ErrInvalidBoard, cell, row, col)
			}
		}
	}

	return board, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) Get(row, col int) (Cell, error) {
	if !that.inRange(row, col) {
		return EmptyCell, fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	return that.cells[that.index(row, col)], nil
}

func (that *Board) Set(row, col int, player Player) error {
	if !player.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidPlayer, player)
	}

	if !that.inRange(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	idx := that.index(row, col)
	if that.cells[idx] != EmptyCell {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrCellOccupied, row, col)
	}

	that.cells[idx] = player.Cell()

	return nil
}

// Clear - empties a cell; search uses it to undo a Set.
func (that *Board) Clear(row, col int) error {
	if !that.inRange(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrOutOfRange, row, col)
	}

	that.cells[that.index(row, col)] = EmptyCell

	return nil
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells - returns free positions in row-major order.
// Search relies on this order to break ties between equal moves.
func (that *Board) EmptyCells() []Position {
	positions := make([]Position, 0, len(that.cells))
	for idx, cell := range that.cells {
		if cell == EmptyCell {
			positions = append(positions, Position{Row: idx / that.size, Col: idx % that.size})
		}
	}

	return positions
}

// Count - returns how many cells hold the player's mark.
func (that *Board) Count(player Player) int {
	count := 0
	for _, cell := range that.cells {
		if cell == player.Cell() {
			count++
		}
	}

	return count
}

func (that *Board) Clone() *Board {
	cells := make([]Cell, len(that.cells))
	copy(cells, that.cells)

	return &Board{size: that.size, cells: cells}
}

// Rows - returns a copy of the grid.
func (that *Board) Rows() [][]Cell {
	rows := make([][]Cell, that.size)
	for row := range rows {
		rows[row] = make([]Cell, that.size)
		copy(rows[row], that.cells[row*that.size:(row+1)*that.size])
	}

	return rows
}

func (that *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Rows())
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	board, err := BoardFromRows(rows)
	if err != nil {
		return err
	}

	*that = *board

	return nil
}

func (that *Board) at(row, col int) Cell {
	return that.cells[that.index(row, col)]
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}

func (that *Board) inRange(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}
