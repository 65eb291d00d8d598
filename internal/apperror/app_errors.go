package apperror

import "errors"

// Every remote call fails with exactly one of these.
var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("server returned failure status")
	ErrDecode    = errors.New("malformed server payload")
)

var (
	ErrNoConnection  = errors.New("no connection to server")
	ErrUserIDMissing = errors.New("user id not found")
	ErrEmptyUserID   = errors.New("user id is empty")
)

var (
	ErrNoGame       = errors.New("no game in progress")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
)
