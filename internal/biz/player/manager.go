package player

import (
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Manager 在线玩家管理
type Manager struct {
	players   sync.Map // playerID -> *Player
	bySession sync.Map // sessionID -> playerID
}

func NewManager() *Manager {
	return &Manager{}
}

// CreatePlayer 创建玩家并绑定会话
func (m *Manager) CreatePlayer(name string, sess Pusher) (*Player, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	p := NewPlayer(id, name)
	p.SetSession(sess)
	m.players.Store(id, p)
	if sess != nil {
		m.bySession.Store(sess.ID(), id)
	}
	return p, nil
}

func (m *Manager) Get(pid string) *Player {
	if v, ok := m.players.Load(pid); ok {
		return v.(*Player)
	}
	return nil
}

func (m *Manager) GetBySessionID(sid string) *Player {
	v, ok := m.bySession.Load(sid)
	if !ok {
		return nil
	}
	return m.Get(v.(string))
}

// Remove 移除玩家并解除会话绑定
func (m *Manager) Remove(pid string) {
	v, ok := m.players.LoadAndDelete(pid)
	if !ok {
		return
	}
	p := v.(*Player)
	if sid := p.GetSessionID(); sid != "" {
		m.bySession.Delete(sid)
	}
}

func (m *Manager) Count() (n int) {
	m.players.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (m *Manager) Range(f func(p *Player) bool) {
	m.players.Range(func(_, v any) bool {
		return f(v.(*Player))
	})
}

func (m *Manager) Close() {}
