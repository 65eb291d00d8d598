package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Refill(t *testing.T) {
	t.Run("Stamps moves on an empty board", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: refilling with a single move
		board = board.Refill([]Move{{Row: 0, Col: 0, Sign: SignX}})

		// Then: only that cell is taken
		expected := Board{
			{SignX, EmptyCell, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
			{EmptyCell, EmptyCell, EmptyCell},
		}
		assert.Equal(t, expected, board)
	})

	t.Run("Keeps known cells missing from the move list", func(t *testing.T) {
		// Given: a board where X took the center
		board := Board{}.Refill([]Move{{Row: 1, Col: 1, Sign: SignX}})

		// When: the server reports a partial list without the center
		board = board.Refill([]Move{{Row: 0, Col: 2, Sign: SignO}})

		// Then: both cells are known
		assert.Equal(t, SignX, board[1][1])
		assert.Equal(t, SignO, board[0][2])
		assert.Equal(t, 2, board.Count(SignX)+board.Count(SignO))
	})

	t.Run("Nil move list leaves the board unchanged", func(t *testing.T) {
		// Given: a board with two marks
		board := Board{}.Refill([]Move{{Row: 0, Col: 0, Sign: SignX}, {Row: 2, Col: 2, Sign: SignO}})

		// When: refilling with nothing
		refilled := board.Refill(nil)

		// Then: nothing is forgotten
		assert.Equal(t, board, refilled)
	})

	t.Run("Ignores moves outside the grid or with an unknown sign", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: the server sends garbage next to a valid move
		board = board.Refill([]Move{
			{Row: 3, Col: 0, Sign: SignX},
			{Row: -1, Col: 1, Sign: SignO},
			{Row: 1, Col: 1, Sign: "Z"},
			{Row: 2, Col: 0, Sign: SignO},
		})

		// Then: only the valid move lands
		assert.Equal(t, 1, board.Count(SignO))
		assert.Equal(t, 0, board.Count(SignX))
		assert.Equal(t, SignO, board[2][0])
	})

	t.Run("Is idempotent", func(t *testing.T) {
		// Given: a board and a move list
		board := Board{}.Refill([]Move{{Row: 0, Col: 1, Sign: SignO}})
		moves := []Move{{Row: 0, Col: 0, Sign: SignX}, {Row: 2, Col: 1, Sign: SignX}}

		// When: refilling twice with the same moves
		once := board.Refill(moves)
		twice := once.Refill(moves)

		// Then: the second pass changes nothing
		assert.Equal(t, once, twice)
	})

	t.Run("Is monotonic", func(t *testing.T) {
		// Given: a board where every cell was observed at some point
		var board Board
		for row := range BoardSize {
			for col := range BoardSize {
				sign := SignX
				if (row+col)%2 == 1 {
					sign = SignO
				}
				board = board.Refill([]Move{{Row: row, Col: col, Sign: sign}})
			}
		}
		full := board

		// When: subsequent move lists lack those cells
		for range 5 {
			board = board.Refill(nil)
			board = board.Refill([]Move{})
		}

		// Then: no cell was cleared
		require.True(t, board.IsFull())
		assert.Equal(t, full, board)
	})
}

func TestBoard_CanMove(t *testing.T) {
	t.Run("X opens the game", func(t *testing.T) {
		var board Board

		assert.True(t, board.CanMove(SignX))
		assert.False(t, board.CanMove(SignO))
	})

	t.Run("0 answers after X", func(t *testing.T) {
		board := Board{}.Refill([]Move{{Row: 0, Col: 0, Sign: SignX}})

		assert.False(t, board.CanMove(SignX))
		assert.True(t, board.CanMove(SignO))
	})

	t.Run("Unknown sign never moves", func(t *testing.T) {
		var board Board

		assert.False(t, board.CanMove(EmptyCell))
		assert.False(t, board.CanMove("Z"))
	})

	t.Run("Never grants both signs for alternating moves", func(t *testing.T) {
		// Given: a full game played in alternating order
		order := [][2]int{{1, 1}, {0, 0}, {0, 2}, {2, 0}, {1, 0}, {1, 2}, {0, 1}, {2, 1}, {2, 2}}

		var board Board
		for i, cell := range order {
			// Then: exactly one sign may move before each placement
			canX, canO := board.CanMove(SignX), board.CanMove(SignO)
			require.NotEqual(t, canX, canO, "step %d", i)

			sign := SignX
			if i%2 == 1 {
				sign = SignO
			}
			require.True(t, board.CanMove(sign), "step %d", i)

			// When: the sign whose turn it is plays
			board = board.Refill([]Move{{Row: cell[0], Col: cell[1], Sign: sign}})
		}

		assert.True(t, board.IsFull())
	})
}

func TestBoard_IsEmpty(t *testing.T) {
	board := Board{}.Refill([]Move{{Row: 1, Col: 2, Sign: SignX}})

	assert.False(t, board.IsEmpty(1, 2))
	assert.True(t, board.IsEmpty(2, 1))
	assert.False(t, board.IsEmpty(3, 3), "out of range cell is never free")
}
