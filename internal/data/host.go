// Package data talks to the host application's statistics service and
// provides fixture-backed stand-ins for offline use.
package data

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"energy-dashboard/internal/model"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// HostError represents an error reported by the host RPC.
type HostError struct {
	Code    string
	Message string
}

func (e *HostError) Error() string { return e.Message }

// HostClient is a WebSocket RPC client for the host statistics service.
// Requests are id-correlated JSON messages; the host answers with a result
// message carrying the same id and pushes subscription events the same way.
//
// The client redials lazily: a failed connection poisons in-flight calls
// and the next call dials again. Reconnect backoff is the caller's concern.
type HostClient struct {
	URL     string
	Token   string
	Timeout time.Duration

	mu      sync.Mutex
	conn    *websocket.Conn
	nextID  int64
	pending map[int64]chan wsMessage
	subs    map[int64]func(model.TimeWindow)
}

// NewHostClient creates a client for the given websocket URL, e.g.
// "ws://host:8123/api/dashboard". A zero timeout defaults to 30s.
func NewHostClient(url, token string, timeout time.Duration) *HostClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HostClient{
		URL:     url,
		Token:   token,
		Timeout: timeout,
		pending: make(map[int64]chan wsMessage),
		subs:    make(map[int64]func(model.TimeWindow)),
	}
}

type wsRequest struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	AccessToken string    `json:"access_token,omitempty"`
	EntityIDs   []string  `json:"entity_ids,omitempty"`
	Start       time.Time `json:"start,omitempty"`
	End         time.Time `json:"end,omitempty"`
	Granularity string    `json:"granularity,omitempty"`
	Fields      []string  `json:"fields,omitempty"`
	// Subscription is the id of the subscription to cancel (unsubscribe).
	Subscription int64 `json:"subscription,omitempty"`
}

type wsError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type wsMessage struct {
	ID      int64           `json:"id"`
	Type    string          `json:"type"` // "result" or "event"
	Success *bool           `json:"success,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *wsError        `json:"error,omitempty"`
	Event   json.RawMessage `json:"event,omitempty"`
}

// FetchStatistics requests hour-granularity sum/change statistics for the
// given entities over the window.
func (c *HostClient) FetchStatistics(ctx context.Context, entityIDs []string, window model.TimeWindow) (map[string][]model.StatSample, error) {
	if cache := GetCache(); cache != nil {
		key := CacheKey(entityIDs, window)
		if series, found := cache.Get(key); found {
			log.Printf("[Host] Cache hit: %d entities (start=%s, end=%s)",
				len(entityIDs), window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))
			return series, nil
		}
	}

	msg, err := c.call(ctx, wsRequest{
		Type:        "statistics/during_period",
		EntityIDs:   entityIDs,
		Start:       window.Start,
		End:         window.End,
		Granularity: "hour",
		Fields:      []string{"sum", "change"},
	})
	if err != nil {
		return nil, err
	}
	var series map[string][]model.StatSample
	if err := json.Unmarshal(msg.Result, &series); err != nil {
		return nil, fmt.Errorf("decode statistics result: %w", err)
	}

	if cache := GetCache(); cache != nil {
		cache.Set(CacheKey(entityIDs, window), series)
	}
	return series, nil
}

// FetchStates requests the current state strings of the given entities,
// typically rate entities whose state is a price per unit.
func (c *HostClient) FetchStates(ctx context.Context, entityIDs []string) (model.EntityStates, error) {
	if len(entityIDs) == 0 {
		return model.EntityStates{}, nil
	}
	msg, err := c.call(ctx, wsRequest{Type: "states/get", EntityIDs: entityIDs})
	if err != nil {
		return nil, err
	}
	var states model.EntityStates
	if err := json.Unmarshal(msg.Result, &states); err != nil {
		return nil, fmt.Errorf("decode states result: %w", err)
	}
	return states, nil
}

// SubscribeWindow registers for date-window broadcasts. The returned
// function cancels the subscription.
func (c *HostClient) SubscribeWindow(ctx context.Context, fn func(model.TimeWindow)) (func(), error) {
	msg, err := c.call(ctx, wsRequest{Type: "dashboard/subscribe_window"})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.subs[msg.ID] = fn
	c.mu.Unlock()

	id := msg.ID
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
		// Best effort; the host also drops subscriptions on disconnect.
		_, err := c.call(context.Background(), wsRequest{Type: "unsubscribe", Subscription: id})
		if err != nil {
			log.Printf("[Host] unsubscribe %d failed: %v", id, err)
		}
	}, nil
}

// Close tears down the connection. In-flight calls fail.
func (c *HostClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// call sends one request and waits for its result message.
func (c *HostClient) call(ctx context.Context, req wsRequest) (wsMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	c.mu.Lock()
	if c.conn == nil {
		if err := c.dialLocked(ctx); err != nil {
			c.mu.Unlock()
			return wsMessage{}, err
		}
	}
	c.nextID++
	req.ID = c.nextID
	ch := make(chan wsMessage, 1)
	c.pending[req.ID] = ch
	conn := c.conn
	err := conn.WriteJSON(req)
	c.mu.Unlock()

	if err != nil {
		c.fail(fmt.Errorf("write %s: %w", req.Type, err))
		return wsMessage{}, fmt.Errorf("write %s: %w", req.Type, err)
	}

	select {
	case msg, ok := <-ch:
		if !ok {
			return wsMessage{}, &HostError{Code: "CONNECTION_LOST", Message: "connection lost before response"}
		}
		if msg.Success != nil && !*msg.Success {
			herr := &HostError{Code: "UNKNOWN_ERROR", Message: "request failed"}
			if msg.Error != nil {
				herr.Code = msg.Error.Code
				herr.Message = msg.Error.Message
			}
			return wsMessage{}, herr
		}
		return msg, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, req.ID)
		c.mu.Unlock()
		return wsMessage{}, fmt.Errorf("%s: %w", req.Type, ctx.Err())
	}
}

// dialLocked opens the connection and starts the read loop. Caller holds mu.
func (c *HostClient) dialLocked(ctx context.Context) error {
	log.Printf("[Host] Dialing %s", c.URL)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return &HostError{Code: "DIAL_FAILED", Message: fmt.Sprintf("dial %s: %v", c.URL, err)}
	}
	if c.Token != "" {
		if err := conn.WriteJSON(wsRequest{Type: "auth", AccessToken: c.Token}); err != nil {
			conn.Close()
			return &HostError{Code: "AUTH_FAILED", Message: fmt.Sprintf("auth: %v", err)}
		}
	}
	c.conn = conn
	go c.readLoop(conn)
	return nil
}

func (c *HostClient) readLoop(conn *websocket.Conn) {
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			c.fail(err)
			return
		}
		switch msg.Type {
		case "event":
			c.dispatchEvent(msg)
		default:
			c.mu.Lock()
			ch, ok := c.pending[msg.ID]
			if ok {
				delete(c.pending, msg.ID)
			}
			c.mu.Unlock()
			if ok {
				ch <- msg
			}
		}
	}
}

func (c *HostClient) dispatchEvent(msg wsMessage) {
	c.mu.Lock()
	fn := c.subs[msg.ID]
	c.mu.Unlock()
	if fn == nil {
		return
	}
	var window model.TimeWindow
	if err := json.Unmarshal(msg.Event, &window); err != nil {
		log.Printf("[Host] Bad window event on subscription %d: %v", msg.ID, err)
		return
	}
	fn(window)
}

// fail drops the connection and unblocks every in-flight call.
func (c *HostClient) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		log.Printf("[Host] Connection lost: %v", err)
		c.conn.Close()
		c.conn = nil
	}
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}
