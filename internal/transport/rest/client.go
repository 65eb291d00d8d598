package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-client/internal/apperror"
)

const (
	getUserEndpoint       = "/get_user"
	getActiveGameEndpoint = "/get_active_game_by_user_id"
	joinGameEndpoint      = "/join_game"
	getGameInfoEndpoint   = "/get_game_info"
	makeMoveEndpoint      = "/make_move"
	getRatingEndpoint     = "/get_rating"
	leaveGameEndpoint     = "/leave_game"
)

const statusOK = 200

const maxResponseSize = 1 << 20

// envelope - wrapper on every server response.
type envelope struct {
	Status *int            `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// Client - talks to the game server over query-string GET requests.
type Client struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client
}

func NewClient(logger *slog.Logger, baseURL string, timeout time.Duration) *Client {
	return &Client{
		logger:  logger.With("component", "rest-client"),
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// get - performs a GET on endpoint and decodes the envelope body into out. out may be nil when the body is ignored.
func (that *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	log := that.logger.With("endpoint", endpoint)

	target := that.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", apperror.ErrTransport, err)
	}

	resp, err := that.http.Do(req)
	if err != nil {
		log.Error("failed to reach server", "error", err)
		return fmt.Errorf("%w: failed to send request: %w", apperror.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		log.Error("failed to read response", "error", err)
		return fmt.Errorf("%w: failed to read response body: %w", apperror.ErrTransport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("server responded with http error", "status_code", resp.StatusCode)
		return fmt.Errorf("%w: http status %d", apperror.ErrStatus, resp.StatusCode)
	}

	var env envelope
	if err = json.Unmarshal(body, &env); err != nil {
		log.Error("failed to decode envelope", "error", err)
		return fmt.Errorf("%w: failed to decode envelope: %w", apperror.ErrDecode, err)
	}

	if env.Status == nil {
		return fmt.Errorf("%w: envelope without status", apperror.ErrDecode)
	}

	if *env.Status != statusOK {
		log.Error("server responded with failure status", "status", *env.Status, "body", string(env.Body))
		return fmt.Errorf("%w: %d", apperror.ErrStatus, *env.Status)
	}

	if out == nil {
		return nil
	}

	if len(env.Body) == 0 || string(env.Body) == "null" {
		return fmt.Errorf("%w: empty body", apperror.ErrDecode)
	}

	if err = json.Unmarshal(env.Body, out); err != nil {
		log.Error("failed to decode body", "error", err)
		return fmt.Errorf("%w: failed to decode body: %w", apperror.ErrDecode, err)
	}

	return nil
}
