package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const DefaultSocketTimeout = 30 * time.Second

var (
	ErrSocketTimeout = errors.New("embedding socket request timed out")
	ErrSocketClosed  = errors.New("embedding socket closed")
)

type socketRequest struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type socketResponse struct {
	ID        string    `json:"id"`
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}

// SocketEmbedder sends embedding requests over one shared websocket. Every
// request carries a correlation id and replies may arrive in any order.
// Each request fails after Timeout without a reply.
type SocketEmbedder struct {
	URL     string
	Timeout time.Duration
	Header  http.Header

	log    *logrus.Logger
	dialer *websocket.Dialer

	mu   sync.Mutex
	conn *socketConn
}

type socketConn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]chan socketResponse
	closed  bool
}

func NewSocketEmbedder(url string, timeout time.Duration, log *logrus.Logger) *SocketEmbedder {
	if timeout <= 0 {
		timeout = DefaultSocketTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SocketEmbedder{
		URL:     url,
		Timeout: timeout,
		log:     log,
		dialer:  websocket.DefaultDialer,
	}
}

func (s *SocketEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	c, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	reply, err := c.register(id)
	if err != nil {
		return nil, err
	}
	defer c.forget(id)

	c.writeMu.Lock()
	err = c.ws.WriteJSON(socketRequest{ID: id, Type: "embed", Text: text})
	c.writeMu.Unlock()
	if err != nil {
		s.drop(c, err)
		return nil, fmt.Errorf("write socket request: %w", err)
	}

	timer := time.NewTimer(s.Timeout)
	defer timer.Stop()

	select {
	case resp := <-reply:
		if resp.Error != "" {
			return nil, fmt.Errorf("socket provider error: %s", resp.Error)
		}
		if len(resp.Embedding) == 0 {
			return nil, fmt.Errorf("socket provider returned empty embedding")
		}
		return resp.Embedding, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s (request %s)", ErrSocketTimeout, s.Timeout, id)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *SocketEmbedder) ModelName() string {
	return "socket:" + s.URL
}

// Close shuts the current connection. Pending requests fail with ErrSocketClosed.
func (s *SocketEmbedder) Close() error {
	s.mu.Lock()
	c := s.conn
	s.conn = nil
	s.mu.Unlock()

	if c == nil {
		return nil
	}
	c.failAll(ErrSocketClosed)
	return c.ws.Close()
}

func (s *SocketEmbedder) connect(ctx context.Context) (*socketConn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return s.conn, nil
	}

	ws, _, err := s.dialer.DialContext(ctx, s.URL, s.Header)
	if err != nil {
		return nil, fmt.Errorf("dial embedding socket: %w", err)
	}

	c := &socketConn{ws: ws, pending: map[string]chan socketResponse{}}
	s.conn = c
	go s.readLoop(c)

	s.log.WithField("url", s.URL).Info("embedding socket connected")
	return c, nil
}

func (s *SocketEmbedder) readLoop(c *socketConn) {
	for {
		var resp socketResponse
		if err := c.ws.ReadJSON(&resp); err != nil {
			s.drop(c, err)
			return
		}
		if !c.deliver(resp) {
			s.log.WithField("id", resp.ID).Warn("embedding socket reply for unknown request")
		}
	}
}

// drop forgets a broken connection so the next call redials.
func (s *SocketEmbedder) drop(c *socketConn, cause error) {
	s.mu.Lock()
	if s.conn == c {
		s.conn = nil
	}
	s.mu.Unlock()

	if c.failAll(fmt.Errorf("%w: %v", ErrSocketClosed, cause)) {
		s.log.WithError(cause).Warn("embedding socket dropped")
	}
	_ = c.ws.Close()
}

func (c *socketConn) register(id string) (chan socketResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrSocketClosed
	}
	ch := make(chan socketResponse, 1)
	c.pending[id] = ch
	return ch, nil
}

func (c *socketConn) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

func (c *socketConn) deliver(resp socketResponse) bool {
	c.mu.Lock()
	ch, ok := c.pending[resp.ID]
	delete(c.pending, resp.ID)
	c.mu.Unlock()

	if ok {
		ch <- resp
	}
	return ok
}

// failAll answers every pending request with err. It reports whether this
// call closed the connection.
func (c *socketConn) failAll(err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.closed = true
	for id, ch := range c.pending {
		ch <- socketResponse{ID: id, Error: err.Error()}
		delete(c.pending, id)
	}
	return true
}
