// Package session is the REST client for the consultation-session API.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) GetSessionByAppointment(ctx context.Context, appointmentID int64) (*domain.CallSession, error) {
	var out domain.CallSession
	url := c.baseURL + "/v1/video-sessions?appointmentId=" + strconv.FormatInt(appointmentID, 10)
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateSession(ctx context.Context, params core.CreateSessionParams) (*domain.CallSession, error) {
	var out domain.CallSession
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/v1/video-sessions", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// joinResponse carries the signaling vendor's field names; callers only
// ever see the opaque JoinGrant.
type joinResponse struct {
	SendbirdUserID      string `json:"sendbirdUserId"`
	SendbirdAccessToken string `json:"sendbirdAccessToken"`
	SendbirdRoomID      string `json:"sendbirdRoomId"`
}

func (c *Client) JoinSession(ctx context.Context, id domain.SessionID, params core.JoinSessionParams) (*domain.JoinGrant, error) {
	var out joinResponse
	url := c.baseURL + "/v1/video-sessions/" + string(id) + "/join"
	if err := c.do(ctx, http.MethodPost, url, params, &out); err != nil {
		return nil, err
	}
	return &domain.JoinGrant{
		SignalingUserID: out.SendbirdUserID,
		AccessToken:     out.SendbirdAccessToken,
		RoomID:          out.SendbirdRoomID,
	}, nil
}

func (c *Client) EndSession(ctx context.Context, id domain.SessionID) error {
	url := c.baseURL + "/v1/video-sessions/" + string(id) + "/end"
	return c.do(ctx, http.MethodPost, url, nil, nil)
}

func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request data: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return core.ErrSessionNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Str("module", "session").Str("url", url).Int("status", resp.StatusCode).Msg("session API error")
		return fmt.Errorf("session API %s: status %d", url, resp.StatusCode)
	}
	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
