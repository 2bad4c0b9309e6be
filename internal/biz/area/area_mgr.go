package area

import (
	"sync"

	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/conf"
	"github.com/yola1107/arcade/pkg/codes"
)

// Manager 区域管理器
type Manager struct {
	repo    Repo
	areaMap sync.Map // map[int32]*Area
}

func NewManager(c *conf.Room, repo Repo) *Manager {
	m := &Manager{repo: repo}
	for i := int32(1); i <= c.Area.AreaNum; i++ {
		m.areaMap.Store(i, NewArea(i, c, repo))
	}
	return m
}

func (m *Manager) Start() error {
	var err error
	m.areaMap.Range(func(_, v any) bool {
		if e := v.(*Area).Start(); e != nil {
			err = e
			return false
		}
		return true
	})
	return err
}

func (m *Manager) Close() {
	m.areaMap.Range(func(_, v any) bool {
		v.(*Area).Close()
		return true
	})
}

func (m *Manager) GetArea(id int32) *Area {
	if v, ok := m.areaMap.Load(id); ok {
		return v.(*Area)
	}
	return nil
}

// ThrowInto 为玩家挑一个合适的区域. 优先进有人的区域凑伴.
func (m *Manager) ThrowInto(p *player.Player) (*Area, error) {
	if p == nil {
		return nil, codes.ErrPlayerNotFound
	}
	if t := m.tryFindAndEnter(p, true); t != nil {
		return t, nil
	}
	if t := m.tryFindAndEnter(p, false); t != nil {
		return t, nil
	}
	return nil, codes.ErrNotEnoughArea
}

// ThrowOff 玩家离开所在区域
func (m *Manager) ThrowOff(p *player.Player) bool {
	if p == nil {
		return false
	}
	t := m.GetArea(p.GetAreaID())
	if t == nil {
		return false
	}
	ok := false
	_, _ = t.Sync(func() ([]byte, error) {
		ok = t.ThrowOff(p)
		return nil, nil
	})
	return ok
}

func (m *Manager) tryFindAndEnter(p *player.Player, preferCrowd bool) *Area {
	areaNum := m.repo.GetRoomConfig().Area.AreaNum
	for i := int32(1); i <= areaNum; i++ {
		t := m.GetArea(i)
		if t == nil || t.IsFull() {
			continue
		}
		if preferCrowd && t.Empty() {
			continue
		}
		entered := false
		_, _ = t.Sync(func() ([]byte, error) {
			entered = t.ThrowInto(p)
			return nil, nil
		})
		if entered {
			return t
		}
	}
	return nil
}

func (m *Manager) Counter() (areaCnt, playerCnt int32) {
	m.areaMap.Range(func(_, v any) bool {
		areaCnt++
		playerCnt += v.(*Area).GetSitCnt()
		return true
	})
	return
}
