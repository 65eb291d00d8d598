package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/rocketscienceinc/tictactoe-client/internal/usecase"
)

const (
	keyPlay   = 'p'
	keyRating = 'r'
	keyQuit   = 'q'
)

// board geometry in terminal cells
const (
	boardX = 4
	boardY = 3
	cellW  = 5
	cellH  = 3
)

var (
	styleBase   = tcell.StyleDefault.Background(tcell.NewRGBColor(28, 170, 156)).Foreground(tcell.ColorWhite)
	styleLine   = styleBase.Foreground(tcell.NewRGBColor(23, 145, 135))
	styleButton = tcell.StyleDefault.Background(tcell.NewRGBColor(19, 128, 117)).Foreground(tcell.ColorWhite).Bold(true)
	styleCross  = styleBase.Foreground(tcell.NewRGBColor(66, 66, 66)).Bold(true)
	styleCircle = styleBase.Foreground(tcell.NewRGBColor(239, 231, 200)).Bold(true)
	styleTitle  = styleBase.Bold(true)
)

type button struct {
	label string
	key   rune
	x, y  int
}

func (that button) hit(x, y int) bool {
	return y == that.y && x >= that.x && x < that.x+len(that.label)
}

var menuButtons = []button{
	{label: "[ Play   (p) ]", key: keyPlay, x: 4, y: 5},
	{label: "[ Rating (r) ]", key: keyRating, x: 4, y: 7},
	{label: "[ Quit   (q) ]", key: keyQuit, x: 4, y: 9},
}

// cellAt - board cell under the terminal position, separators excluded.
func cellAt(x, y int) (int, int, bool) {
	dx, dy := x-boardX, y-boardY
	if dx < 0 || dy < 0 {
		return 0, 0, false
	}

	col, row := dx/(cellW+1), dy/(cellH+1)
	if dx%(cellW+1) >= cellW || dy%(cellH+1) >= cellH || !entity.InBounds(row, col) {
		return 0, 0, false
	}

	return row, col, true
}

// Draw - renders the current snapshot.
func (that *UI) Draw() {
	snapshot := that.manager.Snapshot()

	that.screen.SetStyle(styleBase)
	that.screen.Clear()

	title := "Tic-tac-toe"
	if snapshot.User != nil {
		title = fmt.Sprintf("Tic-tac-toe (%s)", snapshot.User.Username)
	}
	that.text(2, 1, title, styleTitle)

	switch snapshot.State {
	case usecase.StateMenu:
		that.drawMenu(snapshot)
	case usecase.StateGameWaiting:
		that.text(4, 5, "Waiting for the second player...", styleBase)
	case usecase.StateGameRunning:
		that.drawGame(snapshot)
	case usecase.StateGameFinished:
		that.drawFinished(snapshot)
	case usecase.StateRating:
		that.drawRating(snapshot)
	case usecase.StateNoConnection:
		that.text(4, 5, "No connection to the server", styleBase)
		that.text(4, 7, "q - quit", styleBase)
	}

	that.screen.Show()
}

func (that *UI) drawMenu(snapshot usecase.Snapshot) {
	if snapshot.User == nil {
		that.text(4, 5, "Loading...", styleBase)
		return
	}

	for _, b := range menuButtons {
		that.text(b.x, b.y, b.label, styleButton)
	}
}

func (that *UI) drawGame(snapshot usecase.Snapshot) {
	that.drawBoard(snapshot.Board)

	footerY := boardY + entity.BoardSize*(cellH+1)

	if snapshot.Me != nil && snapshot.Enemy != nil {
		crosses, circles := snapshot.Me, snapshot.Enemy
		if crosses.Sign == entity.SignO {
			crosses, circles = circles, crosses
		}

		that.text(boardX, footerY+1, fmt.Sprintf("X %s  VS  %s O", crosses.Username, circles.Username), styleBase)
	}

	if snapshot.CanMove {
		that.text(boardX, footerY, "Your move! (1-9 or click)", styleTitle)
	}
}

func (that *UI) drawFinished(snapshot usecase.Snapshot) {
	that.drawBoard(snapshot.Board)

	footerY := boardY + entity.BoardSize*(cellH+1)

	result := "Draw!"
	if name, ok := snapshot.Winner(); ok {
		result = fmt.Sprintf("Winner: %s!", name)
	}

	that.text(boardX, footerY, result, styleTitle)
	that.text(boardX, footerY+1, "Esc - menu", styleBase)
}

func (that *UI) drawRating(snapshot usecase.Snapshot) {
	that.text(4, 3, "Rating", styleTitle)

	if snapshot.Rating == nil || snapshot.User == nil {
		that.text(4, 5, "Loading...", styleBase)
		return
	}

	view := entity.NewRatingView(snapshot.Rating, snapshot.User.Username)

	y := 5
	for i, entry := range view.Top {
		that.text(4, y, fmt.Sprintf("%d - %s - %d pts.", i+1, entry.Username, entry.Wins), styleBase)
		y += 2
	}

	that.text(4, y, ". . .", styleBase)

	if view.Self != nil {
		that.text(4, y+2, fmt.Sprintf("%s - %d pts.", view.Self.Username, view.Self.Wins), styleBase)
	}

	that.text(4, y+4, "Esc - menu", styleBase)
}

func (that *UI) drawBoard(board entity.Board) {
	width := entity.BoardSize*(cellW+1) - 1
	height := entity.BoardSize*(cellH+1) - 1

	for i := 1; i < entity.BoardSize; i++ {
		lineX := boardX + i*(cellW+1) - 1
		lineY := boardY + i*(cellH+1) - 1

		for y := boardY; y < boardY+height; y++ {
			that.screen.SetContent(lineX, y, '|', nil, styleLine)
		}

		for x := boardX; x < boardX+width; x++ {
			r := '-'
			if (x-boardX+1)%(cellW+1) == 0 {
				r = '+'
			}
			that.screen.SetContent(x, lineY, r, nil, styleLine)
		}
	}

	for row := range entity.BoardSize {
		for col := range entity.BoardSize {
			x := boardX + col*(cellW+1) + cellW/2
			y := boardY + row*(cellH+1) + cellH/2

			switch board[row][col] {
			case entity.SignX:
				that.screen.SetContent(x, y, 'X', nil, styleCross)
			case entity.SignO:
				that.screen.SetContent(x, y, 'O', nil, styleCircle)
			default:
				that.screen.SetContent(x, y, rune('1'+row*entity.BoardSize+col), nil, styleLine)
			}
		}
	}
}

func (that *UI) text(x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		that.screen.SetContent(x+i, y, r, nil, style)
	}
}
