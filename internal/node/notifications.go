package node

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/tgi-processing/internal/model"
	"go.uber.org/zap"
)

const (
	methodBlockAdded          = "blockAddedNotification"
	methodVirtualChainChanged = "virtualChainChangedNotification"

	defaultRelayBuffer = 1024
)

// Relay turns websocket notifications received by rpcclient into
// model.Notification values. Its handlers must be passed to rpcclient.New.
type Relay struct {
	rpcMetrics RPCMetrics
	logger     *zap.Logger
	out        chan model.Notification

	mu          sync.Mutex
	connected   bool
	onReconnect func()
}

// NewRelay constructs a Relay buffering up to buffer notifications.
func NewRelay(buffer int, rpcMetrics RPCMetrics, logger *zap.Logger) *Relay {
	if buffer <= 0 {
		buffer = defaultRelayBuffer
	}
	return &Relay{
		rpcMetrics: rpcMetrics,
		logger:     logger.Named("node_relay"),
		out:        make(chan model.Notification, buffer),
	}
}

// Handlers returns the rpcclient callbacks feeding the relay.
func (r *Relay) Handlers() *rpcclient.NotificationHandlers {
	return &rpcclient.NotificationHandlers{
		OnClientConnected:     r.handleConnected,
		OnUnknownNotification: r.handleNotification,
	}
}

// Notifications returns the channel notifications are delivered to.
func (r *Relay) Notifications() <-chan model.Notification {
	return r.out
}

func (r *Relay) setOnReconnect(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onReconnect = fn
}

func (r *Relay) handleConnected() {
	r.mu.Lock()
	first := !r.connected
	r.connected = true
	fn := r.onReconnect
	r.mu.Unlock()

	if first {
		return
	}
	r.logger.Info("node connection re-established")
	if fn != nil {
		fn()
	}
	r.deliver(model.Notification{Kind: model.NotificationReconnected})
}

func (r *Relay) handleNotification(method string, params []json.RawMessage) {
	n, err := decodeNotification(method, params)
	if err != nil {
		r.logger.Warn("skip malformed notification", zap.String("method", method), zap.Error(err))
		return
	}
	if n == nil {
		r.logger.Debug("ignore notification", zap.String("method", method))
		return
	}
	r.deliver(*n)
}

// deliver never blocks the rpcclient reader; a dropped notification is
// recovered by the periodic catch-up.
func (r *Relay) deliver(n model.Notification) {
	select {
	case r.out <- n:
		r.rpcMetrics.ObserveNotification(string(n.Kind))
	default:
		r.logger.Warn("notification buffer full, dropping", zap.String("kind", string(n.Kind)))
		r.rpcMetrics.ObserveNotification("dropped")
	}
}

func decodeNotification(method string, params []json.RawMessage) (*model.Notification, error) {
	switch method {
	case methodBlockAdded:
		if len(params) == 0 {
			return nil, fmt.Errorf("%w: no params", ErrMalformedResponse)
		}
		var payload blockAddedNotification
		if err := json.Unmarshal(params[0], &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		block, err := payload.Block.toModel()
		if err != nil {
			return nil, err
		}
		return &model.Notification{Kind: model.NotificationBlockAdded, Block: block}, nil
	case methodVirtualChainChanged:
		if len(params) == 0 {
			return nil, fmt.Errorf("%w: no params", ErrMalformedResponse)
		}
		var payload virtualChainResponse
		if err := json.Unmarshal(params[0], &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		change, err := payload.toModel()
		if err != nil {
			return nil, err
		}
		return &model.Notification{Kind: model.NotificationVirtualChainChanged, ChainChange: change}, nil
	default:
		return nil, nil
	}
}

// Subscribe starts delivering node notifications. With a relay it registers
// for push notifications and re-registers after every reconnect; otherwise
// it polls the sink and emits NotificationTipChanged when it moves.
func (c *Client) Subscribe(ctx context.Context) (<-chan model.Notification, error) {
	if c.relay == nil {
		return c.pollSink(ctx), nil
	}
	if err := c.registerNotifications(ctx); err != nil {
		return nil, err
	}
	c.relay.setOnReconnect(func() {
		if err := c.registerNotifications(ctx); err != nil {
			c.logger.Error("re-register notifications failed", zap.Error(err))
		}
	})
	return c.relay.Notifications(), nil
}

func (c *Client) registerNotifications(ctx context.Context) error {
	if err := c.call(ctx, "notifyBlockAdded", nil, nil); err != nil {
		return fmt.Errorf("register block added notifications: %w", err)
	}
	if err := c.call(ctx, "notifyVirtualChainChanged", []interface{}{false}, nil); err != nil {
		return fmt.Errorf("register virtual chain notifications: %w", err)
	}
	return nil
}

func (c *Client) pollSink(ctx context.Context) <-chan model.Notification {
	out := make(chan model.Notification, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()

		var last string
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			sink, err := c.GetSink(ctx)
			if err != nil {
				if ctx.Err() == nil {
					c.logger.Warn("poll sink failed", zap.Error(err))
				}
				continue
			}
			if sink == last {
				continue
			}
			last = sink
			select {
			case out <- model.Notification{Kind: model.NotificationTipChanged}:
				c.rpcMetrics.ObserveNotification(string(model.NotificationTipChanged))
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
