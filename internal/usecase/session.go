package usecase

import (
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type State int

const (
	StateMenu State = iota
	StateGameWaiting
	StateGameRunning
	StateGameFinished
	StateRating
	StateNoConnection
)

var stateNames = map[State]string{
	StateMenu:         "MENU",
	StateGameWaiting:  "GAME_WAITING",
	StateGameRunning:  "GAME_RUNNING",
	StateGameFinished: "GAME_FINISHED",
	StateRating:       "RATING",
	StateNoConnection: "NO_CONNECTION",
}

func (that State) String() string {
	if name, ok := stateNames[that]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(that))
}

// Snapshot - copy of the session handed to the renderer.
type Snapshot struct {
	State   State
	User    *entity.User
	Game    *entity.Game
	Players []entity.Player
	Me      *entity.Player
	Enemy   *entity.Player
	Board   entity.Board
	Rating  []entity.Rating
	CanMove bool
}

// Winner - name of the winner of a finished game. ok is false for a draw or an unknown winner.
func (that Snapshot) Winner() (string, bool) {
	if that.Game == nil || that.Game.WinnerID == nil || that.Game.IsDraw() {
		return "", false
	}

	winnerID := *that.Game.WinnerID

	if that.User != nil && that.User.ID == winnerID {
		return that.User.Username, true
	}

	for _, player := range that.Players {
		if player.UserID == winnerID {
			return player.Username, true
		}
	}

	return "", false
}

// PollTarget - what the poller has to refresh for the current state.
type PollTarget struct {
	State  State
	UserID entity.ID
	GameID entity.ID
}

// Session - the single owner of client state. Background tasks write it, the renderer reads snapshots.
type Session struct {
	mu sync.RWMutex

	state   State
	user    *entity.User
	game    *entity.Game
	players []entity.Player
	me      *entity.Player
	enemy   *entity.Player
	board   entity.Board
	rating  []entity.Rating
}

func NewSession() *Session {
	return &Session{
		state: StateMenu,
	}
}

func (that *Session) State() State {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state
}

func (that *Session) SetUser(user entity.User) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.user = &user
}

// Disconnect - startup gave up reaching the server.
func (that *Session) Disconnect() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state = StateNoConnection
}

// Play - MENU to GAME_WAITING, once the user is known.
func (that *Session) Play() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state != StateMenu || that.user == nil {
		return false
	}

	that.state = StateGameWaiting

	return true
}

func (that *Session) OpenRating() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state != StateMenu || that.user == nil {
		return false
	}

	that.state = StateRating

	return true
}

// Escape - back to MENU from a finished game or the rating screen. Game state and cached rating are dropped.
func (that *Session) Escape() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state != StateGameFinished && that.state != StateRating {
		return false
	}

	that.reset()
	that.rating = nil

	return true
}

func (that *Session) SetRating(rating []entity.Rating) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rating = append([]entity.Rating{}, rating...)
}

// NeedsRating - the rating screen is open and nothing is cached.
func (that *Session) NeedsRating() bool {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.state == StateRating && that.rating == nil
}

func (that *Session) PollTarget() PollTarget {
	that.mu.RLock()
	defer that.mu.RUnlock()

	target := PollTarget{State: that.state}
	if that.user != nil {
		target.UserID = that.user.ID
	}

	if that.game != nil {
		target.GameID = that.game.ID
	}

	return target
}

// ApplyGame - merges a polled game. Ignored unless a game is being waited for or played,
// so a late response cannot bring back a game the user already left.
func (that *Session) ApplyGame(info *entity.GameInfo) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state != StateGameWaiting && that.state != StateGameRunning {
		return false
	}

	that.update(info)

	return true
}

// Resume - picks up a game found at startup, skipping the menu.
func (that *Session) Resume(info *entity.GameInfo) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.state != StateMenu || that.user == nil {
		return false
	}

	that.update(info)

	return true
}

// PlaceMove - optimistically stamps the own sign on a free cell and returns the move to submit.
func (that *Session) PlaceMove(row, col int) (entity.ID, entity.Move, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !entity.InBounds(row, col) {
		return "", entity.Move{}, fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, row, col)
	}

	if that.state != StateGameRunning || that.game == nil || that.me == nil {
		return "", entity.Move{}, apperror.ErrNoGame
	}

	if !that.canMove() {
		return "", entity.Move{}, apperror.ErrNotYourTurn
	}

	if !that.board.IsEmpty(row, col) {
		return "", entity.Move{}, apperror.ErrCellOccupied
	}

	move := entity.Move{Row: row, Col: col, Sign: that.me.Sign}
	that.board[row][col] = move.Sign

	return that.game.ID, move, nil
}

// ApplyMove - reconciles a move accepted by the server for gameID.
func (that *Session) ApplyMove(gameID entity.ID, move entity.Move) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game == nil || that.game.ID != gameID {
		return false
	}

	that.board = that.board.Refill([]entity.Move{move})

	return true
}

// LeaveTarget - the game to give up on quit: any joined game that has not finished.
func (that *Session) LeaveTarget() (entity.ID, entity.ID, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.user == nil || that.game == nil || that.state == StateGameFinished {
		return "", "", false
	}

	return that.user.ID, that.game.ID, true
}

func (that *Session) Snapshot() Snapshot {
	that.mu.RLock()
	defer that.mu.RUnlock()

	snapshot := Snapshot{
		State:   that.state,
		Players: append([]entity.Player(nil), that.players...),
		Board:   that.board,
		CanMove: that.state == StateGameRunning && that.canMove(),
	}

	if that.rating != nil {
		snapshot.Rating = append([]entity.Rating{}, that.rating...)
	}

	if that.user != nil {
		user := *that.user
		snapshot.User = &user
	}

	if that.game != nil {
		game := *that.game
		snapshot.Game = &game
	}

	if that.me != nil {
		me := *that.me
		snapshot.Me = &me
	}

	if that.enemy != nil {
		enemy := *that.enemy
		snapshot.Enemy = &enemy
	}

	return snapshot
}

func (that *Session) update(info *entity.GameInfo) {
	if that.game != nil && that.game.ID != info.Game.ID {
		that.board = entity.Board{}
	}

	game := info.Game
	that.game = &game
	that.players = append([]entity.Player(nil), info.Players...)
	that.board = that.board.Refill(info.Moves)
	that.me, that.enemy = info.SplitPlayers(that.user.ID)

	switch {
	case game.IsFinished():
		that.state = StateGameFinished
	case game.IsActive() && that.me != nil:
		that.state = StateGameRunning
	default:
		that.state = StateGameWaiting
	}
}

func (that *Session) canMove() bool {
	return that.game != nil && that.game.IsActive() && that.me != nil && that.board.CanMove(that.me.Sign)
}

func (that *Session) reset() {
	that.game = nil
	that.players = nil
	that.me = nil
	that.enemy = nil
	that.board = entity.Board{}
	that.state = StateMenu
}
