package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yola1107/kratos/v2/errors"
	"github.com/yola1107/kratos/v2/log"
	"github.com/yola1107/kratos/v2/transport"
)

var (
	ErrSessionClosed = errors.New(500, "SESSION_CLOSED", "session closed")

	_ transport.Server = (*Server)(nil)
)

type ctxKey struct{}

// CtxSessionKey 请求上下文中的会话 key
var CtxSessionKey = ctxKey{}

// SessionFromCtx 从请求上下文取出会话
func SessionFromCtx(ctx context.Context) *Session {
	s, ok := ctx.Value(CtxSessionKey).(*Session)
	if !ok {
		return nil
	}
	return s
}

// HandlerFunc 命令处理函数, 返回值会被编码进响应帧
type HandlerFunc func(ctx context.Context, body []byte) (any, error)

type SessionHook func(*Session)

type options struct {
	network      string
	address      string
	path         string
	readTimeout  time.Duration
	writeTimeout time.Duration
	heartbeat    time.Duration
	sendChanSize int
	maxMsgSize   int64
}

type ServerOption func(*options)

func Network(network string) ServerOption { return func(o *options) { o.network = network } }
func Address(addr string) ServerOption    { return func(o *options) { o.address = addr } }
func Path(path string) ServerOption       { return func(o *options) { o.path = path } }

func Timeout(d time.Duration) ServerOption {
	return func(o *options) {
		o.readTimeout = d
		o.writeTimeout = d
	}
}

// Server JSON websocket 服务, 实现 kratos transport.Server
type Server struct {
	opts     options
	upgrader *websocket.Upgrader
	httpSrv  *http.Server

	mu       sync.RWMutex
	handlers map[string]HandlerFunc

	sessions sync.Map // sessionID -> *Session

	onOpen  SessionHook
	onClose SessionHook
}

func NewServer(opts ...ServerOption) *Server {
	o := options{
		network:      "tcp",
		address:      ":8801",
		path:         "/ws",
		readTimeout:  60 * time.Second,
		writeTimeout: 10 * time.Second,
		heartbeat:    20 * time.Second,
		sendChanSize: 256,
		maxMsgSize:   1 << 16,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Server{
		opts:     o,
		handlers: make(map[string]HandlerFunc),
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// RegisterHandler 绑定命令字处理函数
func (srv *Server) RegisterHandler(cmd string, h HandlerFunc) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.handlers[cmd] = h
}

// OnSessionOpen 设置连接建立回调
func (srv *Server) OnSessionOpen(hook SessionHook) { srv.onOpen = hook }

// OnSessionClose 设置连接关闭回调
func (srv *Server) OnSessionClose(hook SessionHook) { srv.onClose = hook }

// Start 启动服务, 实现 transport.Server
func (srv *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc(srv.opts.path, srv.serveWS)
	srv.httpSrv = &http.Server{Addr: srv.opts.address, Handler: mux}
	log.Infof("[websocket] server listening on: %s%s", srv.opts.address, srv.opts.path)
	if err := srv.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop 关闭服务, 实现 transport.Server
func (srv *Server) Stop(ctx context.Context) error {
	log.Info("[websocket] server stopping")
	srv.sessions.Range(func(_, v any) bool {
		v.(*Session).Close()
		return true
	})
	if srv.httpSrv != nil {
		return srv.httpSrv.Shutdown(ctx)
	}
	return nil
}

func (srv *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("[websocket] upgrade failed: %v", err)
		return
	}

	sess := newSession(srv, conn)
	srv.sessions.Store(sess.ID(), sess)
	if srv.onOpen != nil {
		srv.onOpen(sess)
	}

	go sess.writePump()
	go sess.readPump()
}

func (srv *Server) unregister(sess *Session) {
	if _, ok := srv.sessions.LoadAndDelete(sess.ID()); !ok {
		return
	}
	if srv.onClose != nil {
		srv.onClose(sess)
	}
}

// GetSession 按会话ID查找
func (srv *Server) GetSession(id string) *Session {
	if v, ok := srv.sessions.Load(id); ok {
		return v.(*Session)
	}
	return nil
}

// SessionCount 当前在线连接数
func (srv *Server) SessionCount() (n int) {
	srv.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (srv *Server) dispatch(sess *Session, f *Frame) {
	switch f.Op {
	case OpPing:
		_ = sess.SendFrame(&Frame{Op: OpPong, Seq: f.Seq})
	case OpRequest:
		srv.handleRequest(sess, f)
	default:
		log.Warnf("session %q unexpected frame op %q", sess.ID(), f.Op)
	}
}

func (srv *Server) handleRequest(sess *Session, f *Frame) {
	srv.mu.RLock()
	h, ok := srv.handlers[f.Cmd]
	srv.mu.RUnlock()

	if !ok {
		rsp, _ := NewResponse(f.Seq, f.Cmd, nil, errors.New(404, "UNKNOWN_COMMAND", "unknown command"))
		_ = sess.SendFrame(rsp)
		return
	}

	ctx := context.WithValue(context.Background(), CtxSessionKey, sess)
	body, err := h(ctx, f.Body)
	rsp, mErr := NewResponse(f.Seq, f.Cmd, body, err)
	if mErr != nil {
		log.Errorf("session %q marshal response %q failed: %v", sess.ID(), f.Cmd, mErr)
		return
	}
	_ = sess.SendFrame(rsp)
}

// DecodeBody 请求体解码小助手
func DecodeBody(body []byte, v any) error {
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}
