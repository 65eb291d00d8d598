package usecase

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockGameAPI struct {
	mock.Mock
}

func newMockGameAPI(t *testing.T) *mockGameAPI {
	m := &mockGameAPI{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *mockGameAPI) GetUser(ctx context.Context, userID entity.ID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockGameAPI) GetActiveGame(ctx context.Context, userID entity.ID) (*entity.GameInfo, error) {
	args := m.Called(ctx, userID)
	info, _ := args.Get(0).(*entity.GameInfo)
	return info, args.Error(1)
}

func (m *mockGameAPI) JoinGame(ctx context.Context, userID entity.ID) (*entity.GameInfo, error) {
	args := m.Called(ctx, userID)
	info, _ := args.Get(0).(*entity.GameInfo)
	return info, args.Error(1)
}

func (m *mockGameAPI) GetGameInfo(ctx context.Context, gameID entity.ID) (*entity.GameInfo, error) {
	args := m.Called(ctx, gameID)
	info, _ := args.Get(0).(*entity.GameInfo)
	return info, args.Error(1)
}

func (m *mockGameAPI) MakeMove(ctx context.Context, userID, gameID entity.ID, move entity.Move) (*entity.Move, error) {
	args := m.Called(ctx, userID, gameID, move)
	accepted, _ := args.Get(0).(*entity.Move)
	return accepted, args.Error(1)
}

func (m *mockGameAPI) GetRating(ctx context.Context) ([]entity.Rating, error) {
	args := m.Called(ctx)
	rating, _ := args.Get(0).([]entity.Rating)
	return rating, args.Error(1)
}

func (m *mockGameAPI) LeaveGame(ctx context.Context, userID, gameID entity.ID) error {
	args := m.Called(ctx, userID, gameID)
	return args.Error(0)
}

type mockIdentityRepo struct {
	mock.Mock
}

func (m *mockIdentityRepo) Load(ctx context.Context) (entity.ID, error) {
	args := m.Called(ctx)
	return args.Get(0).(entity.ID), args.Error(1)
}

func (m *mockIdentityRepo) Save(ctx context.Context, id entity.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const (
	myID    entity.ID = "me"
	enemyID entity.ID = "enemy"
)

var me = entity.User{ID: myID, Username: "bob"}

// gameInfo - a game between bob and eve, bob plays mySign.
func gameInfo(gameID entity.ID, status string, mySign entity.Sign, moves ...entity.Move) *entity.GameInfo {
	enemySign := entity.SignO
	if mySign == entity.SignO {
		enemySign = entity.SignX
	}

	return &entity.GameInfo{
		Game: entity.Game{ID: gameID, Status: status},
		Players: []entity.Player{
			{UserID: myID, Username: "bob", Sign: mySign},
			{UserID: enemyID, Username: "eve", Sign: enemySign},
		},
		Moves: moves,
	}
}

// waitingInfo - a game with only bob in it.
func waitingInfo(gameID entity.ID) *entity.GameInfo {
	return &entity.GameInfo{
		Game:    entity.Game{ID: gameID, Status: entity.StatusActive},
		Players: []entity.Player{{UserID: myID, Username: "bob", Sign: entity.SignX}},
	}
}

// runningSession - bob is in a running game with the given sign.
func runningSession(mySign entity.Sign, moves ...entity.Move) *Session {
	session := NewSession()
	session.SetUser(me)
	session.Play()
	session.ApplyGame(gameInfo("g1", entity.StatusActive, mySign, moves...))

	return session
}
