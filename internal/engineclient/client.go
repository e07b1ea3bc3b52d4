// Package engineclient talks to one remote engine service instance over
// its REST API: game sessions, move submission, and move suggestions.
package engineclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/dkoval/arena/pkg/enginedto"
)

type Client struct {
	baseURL string
	http    *fasthttp.Client

	defaultTimeout time.Duration
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.defaultTimeout = d }
}

func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) { c.http.MaxConnsPerHost = n }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &fasthttp.Client{MaxConnsPerHost: 4},
		defaultTimeout: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateGame opens a new game session and returns its key.
func (c *Client) CreateGame(ctx context.Context) (string, error) {
	var resp enginedto.CreateGameResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/games", nil, &resp); err != nil {
		return "", fmt.Errorf("create game: %w", err)
	}
	if resp.Key == "" {
		return "", fmt.Errorf("create game: empty session key from %s", c.baseURL)
	}
	return resp.Key, nil
}

// DeleteGame releases the session identified by key.
func (c *Client) DeleteGame(ctx context.Context, key string) error {
	if err := c.doJSON(ctx, fasthttp.MethodDelete, "/games/"+key, nil, nil); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

// MakeMove submits a move to the session and returns the resulting
// position summary for the side now to move.
func (c *Client) MakeMove(ctx context.Context, key, move string) (enginedto.TurnInfo, error) {
	req := enginedto.MoveRequest{Move: move}
	var resp enginedto.MoveResponse
	if err := c.doJSON(ctx, fasthttp.MethodPost, "/games/"+key+"/move", req, &resp); err != nil {
		return enginedto.TurnInfo{}, fmt.Errorf("move %q: %w", move, err)
	}
	return resp.TurnInfo, nil
}

// BestMove asks the engine for its chosen move given the remaining time
// budget in milliseconds. The returned duration is the wall-clock time
// the query took; it is what gets charged to the mover's clock.
func (c *Client) BestMove(ctx context.Context, key string, totalMs int64) (string, time.Duration, error) {
	path := "/games/" + key + "/move_suggestion?total_ms=" + strconv.FormatInt(totalMs, 10)
	var resp enginedto.SuggestionResponse
	start := time.Now()
	err := c.doJSON(ctx, fasthttp.MethodGet, path, nil, &resp)
	elapsed := time.Since(start)
	if err != nil {
		return "", elapsed, fmt.Errorf("move suggestion: %w", err)
	}
	return resp.Move, elapsed, nil
}

// doJSON performs a single blocking round trip. There is no retry: a
// failed or non-2xx exchange means the remote session can no longer be
// trusted to match the local bookkeeping.
func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	req.Header.SetContentType("application/json")

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		req.SetBody(payload)
	}

	if err := c.http.DoDeadline(req, resp, c.computeDeadline(ctx)); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("engine api error: status=%d body=%s", status, truncate(string(resp.Body()), 512))
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) computeDeadline(ctx context.Context) time.Time {
	clientDL := time.Now().Add(c.defaultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(clientDL) {
		return dl
	}
	return clientDL
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
