package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/yola1107/kratos/v2/log"
)

// Session 一条客户端连接. 写操作统一走 send 队列,
// 由 writePump 串行落盘到连接上.
type Session struct {
	id   string
	conn *websocket.Conn
	srv  *Server

	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}

	mu   sync.RWMutex
	meta map[string]string // 业务数据绑定 (playerID 等)

	lastActive int64 // unix 秒
}

func newSession(srv *Server, conn *websocket.Conn) *Session {
	return &Session{
		id:         uuid.NewString(),
		conn:       conn,
		srv:        srv,
		send:       make(chan []byte, srv.opts.sendChanSize),
		done:       make(chan struct{}),
		meta:       make(map[string]string),
		lastActive: time.Now().Unix(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) SetMeta(key, val string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[key] = val
}

func (s *Session) GetMeta(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta[key]
}

// Push 推送一条消息给客户端
func (s *Session) Push(cmd string, body any) error {
	f, err := NewPush(cmd, body)
	if err != nil {
		return err
	}
	return s.SendFrame(f)
}

func (s *Session) SendFrame(f *Frame) error {
	raw, err := f.Marshal()
	if err != nil {
		return err
	}
	return s.Send(raw)
}

func (s *Session) Send(raw []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	case s.send <- raw:
		return nil
	default:
		// 发送队列打满, 直接踢掉慢客户端
		log.Warnf("session %q send buffer full, closing", s.id)
		s.Close()
		return ErrSessionClosed
	}
}

func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}

func (s *Session) readPump() {
	defer func() {
		s.srv.unregister(s)
		s.Close()
	}()

	s.conn.SetReadLimit(s.srv.opts.maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.srv.opts.readTimeout))

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("session %q read error: %v", s.id, err)
			}
			return
		}
		s.lastActive = time.Now().Unix()
		_ = s.conn.SetReadDeadline(time.Now().Add(s.srv.opts.readTimeout))

		f, err := Unmarshal(raw)
		if err != nil {
			log.Warnf("session %q bad frame: %v", s.id, err)
			continue
		}
		s.srv.dispatch(s, f)
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(s.srv.opts.heartbeat)
	defer func() {
		ticker.Stop()
		s.Close()
	}()

	for {
		select {
		case <-s.done:
			return
		case raw := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.srv.opts.writeTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(s.srv.opts.writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
