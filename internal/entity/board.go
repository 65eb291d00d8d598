package entity

const BoardSize = 3

// Board - locally cached 3x3 grid. Row-major, EmptyCell marks a free cell.
type Board [BoardSize][BoardSize]Sign

func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// Refill - folds moves into the board. Cells known before and missing from moves are carried forward,
// so a partial move list from the server never clears the board.
func (that Board) Refill(moves []Move) Board {
	var board Board

	for _, move := range moves {
		if !InBounds(move.Row, move.Col) || !move.Sign.IsValid() {
			continue
		}

		board[move.Row][move.Col] = move.Sign
	}

	for row := range BoardSize {
		for col := range BoardSize {
			if board[row][col] == EmptyCell && that[row][col] != EmptyCell {
				board[row][col] = that[row][col]
			}
		}
	}

	return board
}

func (that Board) IsEmpty(row, col int) bool {
	return InBounds(row, col) && that[row][col] == EmptyCell
}

func (that Board) Count(sign Sign) int {
	count := 0

	for _, line := range that {
		for _, cell := range line {
			if cell == sign {
				count++
			}
		}
	}

	return count
}

// CanMove - parity hint for whose turn it is: X moves while it has placed no more than 0, 0 moves while behind X.
// The server stays the authority.
func (that Board) CanMove(sign Sign) bool {
	countX, countO := that.Count(SignX), that.Count(SignO)

	switch sign {
	case SignX:
		return countX <= countO
	case SignO:
		return countO < countX
	default:
		return false
	}
}

// IsFull - every cell is taken.
func (that Board) IsFull() bool {
	return that.Count(EmptyCell) == 0
}
