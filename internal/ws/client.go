package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/log"
)

// PushHandler 客户端推送处理函数
type PushHandler func(body []byte)

type clientOptions struct {
	url          string
	dialTimeout  time.Duration
	reqTimeout   time.Duration
	pingInterval time.Duration
}

type ClientOption func(*clientOptions)

func WithURL(url string) ClientOption { return func(o *clientOptions) { o.url = url } }

func WithRequestTimeout(d time.Duration) ClientOption {
	return func(o *clientOptions) { o.reqTimeout = d }
}

// Client JSON websocket 客户端, 供压测工具和本地联调使用
type Client struct {
	opts clientOptions
	conn *websocket.Conn

	seq     atomic.Int32
	mu      sync.Mutex
	pending map[int32]chan *Frame

	pushMu   sync.RWMutex
	pushFunc map[string]PushHandler

	closeOnce sync.Once
	done      chan struct{}
}

func NewClient(opts ...ClientOption) (*Client, error) {
	o := clientOptions{
		url:          "ws://127.0.0.1:8801/ws",
		dialTimeout:  5 * time.Second,
		reqTimeout:   10 * time.Second,
		pingInterval: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dialer := websocket.Dialer{HandshakeTimeout: o.dialTimeout}
	conn, _, err := dialer.Dial(o.url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts:     o,
		conn:     conn,
		pending:  make(map[int32]chan *Frame),
		pushFunc: make(map[string]PushHandler),
		done:     make(chan struct{}),
	}
	go c.readLoop()
	go c.pingLoop()
	return c, nil
}

// OnPush 注册推送回调
func (c *Client) OnPush(cmd string, h PushHandler) {
	c.pushMu.Lock()
	defer c.pushMu.Unlock()
	c.pushFunc[cmd] = h
}

// Request 发起请求并等待响应. rsp 为 nil 时丢弃响应体.
func (c *Client) Request(ctx context.Context, cmd string, req, rsp any) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return err
	}

	seq := c.seq.Add(1)
	ch := make(chan *Frame, 1)
	c.mu.Lock()
	c.pending[seq] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, seq)
		c.mu.Unlock()
	}()

	f := &Frame{Op: OpRequest, Seq: seq, Cmd: cmd, Body: raw}
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	c.mu.Lock()
	err = c.conn.WriteMessage(websocket.TextMessage, data)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	timer := time.NewTimer(c.opts.reqTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return ErrSessionClosed
	case <-timer.C:
		return errors.New(504, "REQUEST_TIMEOUT", "request timeout")
	case r := <-ch:
		if r.Code != 0 {
			return errors.New(int(r.Code), r.Msg, r.Msg)
		}
		if rsp != nil && len(r.Body) > 0 {
			return json.Unmarshal(r.Body, rsp)
		}
		return nil
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		f, err := Unmarshal(raw)
		if err != nil {
			log.Warnf("client bad frame: %v", err)
			continue
		}
		switch f.Op {
		case OpResponse:
			c.mu.Lock()
			ch, ok := c.pending[f.Seq]
			c.mu.Unlock()
			if ok {
				ch <- f
			}
		case OpPush:
			c.pushMu.RLock()
			h, ok := c.pushFunc[f.Cmd]
			c.pushMu.RUnlock()
			if ok {
				h(f.Body)
			}
		case OpPong:
		default:
		}
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(c.opts.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			f := &Frame{Op: OpPing}
			data, _ := f.Marshal()
			c.mu.Lock()
			err := c.conn.WriteMessage(websocket.TextMessage, data)
			c.mu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
