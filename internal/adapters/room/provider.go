// Package room adapts the external signaling/transport service to the
// core Room contract: authenticate, open the websocket, fetch a room,
// then translate wire frames into the typed event set.
package room

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/spherecorp-kr/drcall-callcore/internal/core"
)

var (
	ErrNotAuthenticated = errors.New("room provider: not authenticated")
	ErrNotConnected     = errors.New("room provider: websocket not connected")
	ErrEmptyCredentials = errors.New("room provider: empty credentials")
)

// Provider owns the handshake with the signaling service. It is handed to
// the controller as a plain value, never reached through a package global.
type Provider struct {
	endpoint string
	dialer   *websocket.Dialer

	mu     sync.Mutex
	userID string
	token  string
	conn   *websocket.Conn
}

func NewProvider(endpoint string) *Provider {
	return &Provider{endpoint: endpoint, dialer: websocket.DefaultDialer}
}

func (p *Provider) Authenticate(ctx context.Context, signalingUserID, accessToken string) error {
	if signalingUserID == "" || accessToken == "" {
		return ErrEmptyCredentials
	}
	p.mu.Lock()
	p.userID, p.token = signalingUserID, accessToken
	p.mu.Unlock()
	return nil
}

func (p *Provider) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.userID == "" {
		return ErrNotAuthenticated
	}
	if p.conn != nil {
		return nil
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+p.token)
	header.Set("X-User-Id", p.userID)

	conn, _, err := p.dialer.DialContext(ctx, p.endpoint, header)
	if err != nil {
		return err
	}
	p.conn = conn
	log.Info().Str("module", "room").Str("endpoint", p.endpoint).Msg("signaling connected")
	return nil
}

// FetchRoom hands the websocket over to a fresh Conn. The returned room
// owns the socket for its whole lifetime; entering again requires a new
// Connect + FetchRoom round trip.
func (p *Provider) FetchRoom(ctx context.Context, roomID string) (core.Room, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil, ErrNotConnected
	}
	conn := p.conn
	p.conn = nil
	return newConn(roomID, conn), nil
}
