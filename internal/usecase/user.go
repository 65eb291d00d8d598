package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-client/internal/entity"
)

type UserUseCase interface {
	Identify(ctx context.Context) (entity.ID, error)
}

type identityRepo interface {
	Load(ctx context.Context) (entity.ID, error)
	Save(ctx context.Context, id entity.ID) error
}

type userUseCase struct {
	repo identityRepo
	in   io.Reader
	out  io.Writer
}

// NewUserUseCase - in and out are used once to ask the operator for an id when none is stored.
func NewUserUseCase(repo identityRepo, in io.Reader, out io.Writer) UserUseCase {
	return &userUseCase{
		repo: repo,
		in:   in,
		out:  out,
	}
}

func (that *userUseCase) Identify(ctx context.Context) (entity.ID, error) {
	id, err := that.repo.Load(ctx)
	if err == nil {
		return id, nil
	}

	if !errors.Is(err, apperror.ErrUserIDMissing) {
		return "", fmt.Errorf("failed to load user id: %w", err)
	}

	id, err = that.prompt()
	if err != nil {
		return "", err
	}

	if err = that.repo.Save(ctx, id); err != nil {
		return "", fmt.Errorf("failed to save user id: %w", err)
	}

	return id, nil
}

func (that *userUseCase) prompt() (entity.ID, error) {
	if _, err := fmt.Fprint(that.out, "Enter user id: "); err != nil {
		return "", fmt.Errorf("failed to prompt user id: %w", err)
	}

	line, err := bufio.NewReader(that.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read user id: %w", err)
	}

	id := strings.TrimSpace(line)
	if id == "" {
		return "", apperror.ErrEmptyUserID
	}

	return entity.ID(id), nil
}
