package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type gameBody struct {
	Game  *entity.Game    `json:"game"`
	Users []entity.Player `json:"users"`
	Moves []entity.Move   `json:"moves"`
}

func (that *gameBody) toGameInfo() (*entity.GameInfo, error) {
	if that.Game == nil {
		return nil, fmt.Errorf("%w: game is missing", apperror.ErrDecode)
	}

	if that.Game.ID.IsZero() {
		return nil, fmt.Errorf("%w: game id is missing", apperror.ErrDecode)
	}

	return &entity.GameInfo{
		Game:    *that.Game,
		Players: that.Users,
		Moves:   that.Moves,
	}, nil
}

// GetUser - loads the user profile.
func (that *Client) GetUser(ctx context.Context, userID entity.ID) (*entity.User, error) {
	var body struct {
		User *entity.User `json:"user"`
	}

	params := url.Values{"user_id": {userID.String()}}
	if err := that.get(ctx, getUserEndpoint, params, &body); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if body.User == nil || body.User.ID.IsZero() {
		return nil, fmt.Errorf("failed to get user: %w: user is missing", apperror.ErrDecode)
	}

	return body.User, nil
}

// GetActiveGame - returns the game the user is currently playing.
func (that *Client) GetActiveGame(ctx context.Context, userID entity.ID) (*entity.GameInfo, error) {
	var body gameBody

	params := url.Values{"user_id": {userID.String()}}
	if err := that.get(ctx, getActiveGameEndpoint, params, &body); err != nil {
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	info, err := body.toGameInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get active game: %w", err)
	}

	return info, nil
}

// JoinGame - asks the server to match the user into a game. The response carries no moves.
func (that *Client) JoinGame(ctx context.Context, userID entity.ID) (*entity.GameInfo, error) {
	var body gameBody

	params := url.Values{"user_id": {userID.String()}}
	if err := that.get(ctx, joinGameEndpoint, params, &body); err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	info, err := body.toGameInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	info.Moves = nil

	return info, nil
}

func (that *Client) GetGameInfo(ctx context.Context, gameID entity.ID) (*entity.GameInfo, error) {
	var body gameBody

	params := url.Values{"game_id": {gameID.String()}}
	if err := that.get(ctx, getGameInfoEndpoint, params, &body); err != nil {
		return nil, fmt.Errorf("failed to get game info: %w", err)
	}

	info, err := body.toGameInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to get game info: %w", err)
	}

	return info, nil
}

// MakeMove - submits a single move. There is no retry, the next poll reconciles the board.
func (that *Client) MakeMove(ctx context.Context, userID, gameID entity.ID, move entity.Move) (*entity.Move, error) {
	var body struct {
		Move *entity.Move `json:"move"`
	}

	params := url.Values{
		"user_id": {userID.String()},
		"game_id": {gameID.String()},
		"row":     {strconv.Itoa(move.Row)},
		"col":     {strconv.Itoa(move.Col)},
		"sign":    {string(move.Sign)},
	}
	if err := that.get(ctx, makeMoveEndpoint, params, &body); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	if body.Move == nil {
		return nil, fmt.Errorf("failed to make move: %w: move is missing", apperror.ErrDecode)
	}

	return body.Move, nil
}

func (that *Client) GetRating(ctx context.Context) ([]entity.Rating, error) {
	var body struct {
		Rating []entity.Rating `json:"rating"`
	}

	if err := that.get(ctx, getRatingEndpoint, nil, &body); err != nil {
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	if body.Rating == nil {
		return nil, fmt.Errorf("failed to get rating: %w: rating is missing", apperror.ErrDecode)
	}

	return body.Rating, nil
}

// LeaveGame - gives up the game. A nil error means the server accepted it.
func (that *Client) LeaveGame(ctx context.Context, userID, gameID entity.ID) error {
	params := url.Values{
		"user_id": {userID.String()},
		"game_id": {gameID.String()},
	}
	if err := that.get(ctx, leaveGameEndpoint, params, nil); err != nil {
		return fmt.Errorf("failed to leave game: %w", err)
	}

	return nil
}
