package mirror

import (
	"github.com/r3labs/diff/v3"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
)

// facet 快照的一个观察切面: 提取关心的部分做差异检测,
// 变化时触发对应回调. 新增观察维度只需追加一个切面.
type facet struct {
	name    string
	changed func(old, cur *v1.AreaSnapshot) bool
	emit    func(m *Mirror, cur *v1.AreaSnapshot)
}

func defaultFacets() []facet {
	return []facet{
		{
			name: "occupants",
			changed: func(old, cur *v1.AreaSnapshot) bool {
				return deepChanged(occupantsOf(old), occupantsOf(cur))
			},
			emit: func(m *Mirror, cur *v1.AreaSnapshot) {
				for _, f := range m.hooks.occupants {
					f(cur.Occupants)
				}
			},
		},
		{
			name: "status",
			changed: func(old, cur *v1.AreaSnapshot) bool {
				return statusOf(old) != statusOf(cur)
			},
			emit: func(m *Mirror, cur *v1.AreaSnapshot) {
				for _, f := range m.hooks.status {
					f(statusOf(cur))
				}
			},
		},
		{
			name: "score",
			changed: func(old, cur *v1.AreaSnapshot) bool {
				return scoreOf(old) != scoreOf(cur)
			},
			emit: func(m *Mirror, cur *v1.AreaSnapshot) {
				for _, f := range m.hooks.score {
					f(scoreOf(cur))
				}
			},
		},
		{
			name: "pizza",
			changed: func(old, cur *v1.AreaSnapshot) bool {
				return deepChanged(pizzaOf(old), pizzaOf(cur))
			},
			emit: func(m *Mirror, cur *v1.AreaSnapshot) {
				for _, f := range m.hooks.pizza {
					f(pizzaOf(cur))
				}
			},
		},
		{
			name: "customers",
			changed: func(old, cur *v1.AreaSnapshot) bool {
				return deepChanged(customersOf(old), customersOf(cur))
			},
			emit: func(m *Mirror, cur *v1.AreaSnapshot) {
				for _, f := range m.hooks.customers {
					f(customersOf(cur))
				}
			},
		},
		{
			// 任何会话层面的变化, 最后触发
			name: "game",
			changed: func(old, cur *v1.AreaSnapshot) bool {
				return deepChanged(gameOf(old), gameOf(cur))
			},
			emit: func(m *Mirror, cur *v1.AreaSnapshot) {
				for _, f := range m.hooks.game {
					f(cur.Game)
				}
			},
		},
	}
}

// deepChanged 结构化深比较
func deepChanged(a, b any) bool {
	changelog, err := diff.Diff(a, b)
	if err != nil {
		// 比较失败按变化处理, 宁可多发一次回调
		return true
	}
	return len(changelog) > 0
}

func gameOf(s *v1.AreaSnapshot) *v1.GameSession {
	if s == nil {
		return nil
	}
	return s.Game
}

func occupantsOf(s *v1.AreaSnapshot) []*v1.PlayerInfo {
	if s == nil {
		return nil
	}
	return s.Occupants
}

func pizzaOf(s *v1.AreaSnapshot) *v1.Pizza {
	if s == nil || s.Game == nil || s.Game.State == nil {
		return nil
	}
	return s.Game.State.CurrentPizza
}

func customersOf(s *v1.AreaSnapshot) []*v1.Customer {
	if s == nil || s.Game == nil || s.Game.State == nil {
		return nil
	}
	return s.Game.State.CurrentCustomers
}
