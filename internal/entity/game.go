package entity

import "strings"

const (
	StatusActive   = "ACTIVE"
	StatusFinished = "FINISHED"
)

type Sign string

const (
	SignX Sign = "X"
	SignO Sign = "0"

	EmptyCell Sign = ""
)

func (that Sign) IsValid() bool {
	return that == SignX || that == SignO
}

type Game struct {
	ID       ID     `json:"game_id"`
	Status   string `json:"status"`
	WinnerID *ID    `json:"winner_id"`
}

func (that *Game) IsActive() bool {
	return strings.EqualFold(that.Status, StatusActive)
}

func (that *Game) IsFinished() bool {
	return strings.EqualFold(that.Status, StatusFinished)
}

// IsDraw - reports a finished game without a winner.
func (that *Game) IsDraw() bool {
	return that.IsFinished() && (that.WinnerID == nil || that.WinnerID.IsZero())
}

type Player struct {
	UserID   ID     `json:"user_id"`
	Username string `json:"username"`
	Sign     Sign   `json:"sign"`
}

type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Sign Sign `json:"sign"`
}

// GameInfo - game state as reported by the server in a single response.
type GameInfo struct {
	Game    Game
	Players []Player
	Moves   []Move
}

// SplitPlayers - returns the player owned by userID and the opponent.
// Both are nil until the server reports exactly two players.
func (that *GameInfo) SplitPlayers(userID ID) (*Player, *Player) {
	if len(that.Players) != 2 {
		return nil, nil
	}

	var me, enemy *Player

	for i := range that.Players {
		player := that.Players[i]
		if player.UserID == userID {
			me = &player
		} else {
			enemy = &player
		}
	}

	if me == nil || enemy == nil {
		return nil, nil
	}

	return me, enemy
}
