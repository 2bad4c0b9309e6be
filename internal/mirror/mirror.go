// Package mirror 维护区域快照的客户端镜像:
// 缓存最近一次快照, 按切面做差异检测并触发对应回调,
// 本地就能判定的非法操作直接拒绝, 不走网络.
package mirror

import (
	"sync"

	"github.com/jinzhu/copier"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
)

// Mirror 单个玩家视角的区域镜像
type Mirror struct {
	mu       sync.RWMutex
	playerID string
	cmd      Commander

	gameID string // 已知会话ID
	snap   *v1.AreaSnapshot

	facets []facet
	hooks  hooks
}

type hooks struct {
	game      []func(*v1.GameSession)
	status    []func(string)
	score     []func(int32)
	pizza     []func(*v1.Pizza)
	customers []func([]*v1.Customer)
	occupants []func([]*v1.PlayerInfo)
}

func New(playerID string, cmd Commander) *Mirror {
	m := &Mirror{
		playerID: playerID,
		cmd:      cmd,
	}
	m.facets = defaultFacets()
	return m
}

// 回调注册

func (m *Mirror) OnGameChanged(f func(*v1.GameSession)) { m.hooks.game = append(m.hooks.game, f) }
func (m *Mirror) OnStatusChanged(f func(string))        { m.hooks.status = append(m.hooks.status, f) }
func (m *Mirror) OnScoreChanged(f func(int32))          { m.hooks.score = append(m.hooks.score, f) }
func (m *Mirror) OnPizzaChanged(f func(*v1.Pizza))      { m.hooks.pizza = append(m.hooks.pizza, f) }
func (m *Mirror) OnCustomersChanged(f func([]*v1.Customer)) {
	m.hooks.customers = append(m.hooks.customers, f)
}
func (m *Mirror) OnOccupantsChanged(f func([]*v1.PlayerInfo)) {
	m.hooks.occupants = append(m.hooks.occupants, f)
}

// Update 收到新快照. 先深拷贝入库, 再对每个切面做差异检测,
// 只有发生变化的切面触发回调.
func (m *Mirror) Update(snap *v1.AreaSnapshot) {
	if snap == nil {
		return
	}
	owned := &v1.AreaSnapshot{}
	if err := copier.CopyWithOption(owned, snap, copier.Option{DeepCopy: true}); err != nil {
		log.Errorf("mirror copy snapshot failed: %v", err)
		return
	}

	m.mu.Lock()
	old := m.snap
	m.snap = owned
	if owned.Game != nil {
		m.gameID = owned.Game.GameID
	}
	changed := make([]facet, 0, len(m.facets))
	for _, f := range m.facets {
		if f.changed(old, owned) {
			changed = append(changed, f)
		}
	}
	m.mu.Unlock()

	for _, f := range changed {
		f.emit(m, owned)
	}
}

// Snapshot 当前缓存的快照 (只读, 调用方不得修改)
func (m *Mirror) Snapshot() *v1.AreaSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// GameID 已知的会话ID, 未加入过会话时为空
func (m *Mirror) GameID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gameID
}

// Status 镜像中的游戏状态, 无会话时默认可开局
func (m *Mirror) Status() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return statusOf(m.snap)
}

// Score 镜像中的当前得分
func (m *Mirror) Score() int32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return scoreOf(m.snap)
}

// IsActive 会话是否处于活跃状态
func (m *Mirror) IsActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snap
	if s == nil || s.Game == nil || len(s.Game.Players) == 0 {
		return false
	}
	return statusOf(s) != v1.StatusWaitingForPlayers
}

// IsPlayer 本玩家是否在会话名单中
func (m *Mirror) IsPlayer() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.snap
	if s == nil || s.Game == nil {
		return false
	}
	for _, pid := range s.Game.Players {
		if pid == m.playerID {
			return true
		}
	}
	return false
}

func statusOf(s *v1.AreaSnapshot) string {
	if s == nil || s.Game == nil || s.Game.State == nil {
		return v1.StatusWaitingToStart
	}
	return s.Game.State.Status
}

func scoreOf(s *v1.AreaSnapshot) int32 {
	if s == nil || s.Game == nil || s.Game.State == nil {
		return 0
	}
	return s.Game.State.CurrentScore
}
