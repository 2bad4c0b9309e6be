// Package pizza 实现披萨派对玩法引擎:
// 玩家制作披萨, 放入烤箱, 出餐匹配顾客订单得分.
package pizza

import (
	"github.com/jinzhu/copier"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/game"
	"github.com/yola1107/arcade/internal/conf"
	"github.com/yola1107/arcade/internal/model"
	"github.com/yola1107/arcade/pkg/codes"
)

var _ game.Engine = (*Game)(nil)

// Game 一局披萨派对
type Game struct {
	*game.Base
	c *conf.Room_Game

	score       int32
	pizza       *v1.Pizza // 工作台上的披萨
	oven        *v1.Oven
	customers   []*v1.Customer
	nextPizzaID int32
}

func NewGame(c *conf.Room_Game) *Game {
	g := &Game{
		Base:        game.NewBase(c.MaxPlayer, c.MinPlayer),
		c:           c,
		oven:        &v1.Oven{},
		nextPizzaID: 1,
	}
	g.customers = make([]*v1.Customer, c.CustomerSeats)
	for i := range g.customers {
		g.customers[i] = model.EmptyCustomer()
	}
	return g
}

// Start 开局并放出第一批顾客
func (g *Game) Start(pid string) error {
	if err := g.Base.Start(pid); err != nil {
		return err
	}
	for i := range g.customers {
		g.customers[i] = model.RandomCustomer(g.c.Difficulty, g.c.CustomerTimeoutSec)
	}
	g.pizza = model.NewPizza(g.takePizzaID())
	log.Infof("pizza game started. %s", g.Desc())
	return nil
}

// Move 玩家操作入口
func (g *Game) Move(pid string, mv *v1.Move) error {
	if err := g.RequireInProgress(pid); err != nil {
		return err
	}
	if mv == nil {
		return codes.ErrInvalidMove
	}

	switch mv.GamePiece {
	case v1.PiecePlaceTopping:
		return g.placeTopping(mv.Topping)
	case v1.PieceMoveToOven:
		return g.moveToOven()
	case v1.PieceThrowOut:
		return g.throwOut()
	case v1.PieceMoveToCustomer:
		return g.moveToCustomer()
	default:
		return codes.ErrInvalidMove
	}
}

// 往工作台披萨加一个配料
func (g *Game) placeTopping(t *v1.Topping) error {
	if t == nil || t.Kind == "" {
		return codes.ErrInvalidMove
	}
	if g.pizza == nil {
		g.pizza = model.NewPizza(g.takePizzaID())
	}
	g.pizza.Toppings = append(g.pizza.Toppings, &v1.Topping{
		ID:             int32(len(g.pizza.Toppings) + 1),
		Kind:           t.Kind,
		AppliedOnPizza: true,
	})
	return nil
}

// 工作台披萨入烤箱
func (g *Game) moveToOven() error {
	if g.pizza == nil || len(g.pizza.Toppings) == 0 {
		return codes.ErrInvalidMove
	}
	if g.oven.Pizza != nil {
		return codes.ErrInvalidMove
	}
	g.pizza.Cooked = true
	g.oven.Pizza = g.pizza
	g.pizza = model.NewPizza(g.takePizzaID())
	return nil
}

// 丢弃工作台披萨
func (g *Game) throwOut() error {
	if g.pizza == nil || len(g.pizza.Toppings) == 0 {
		return codes.ErrInvalidMove
	}
	g.pizza = model.NewPizza(g.takePizzaID())
	return nil
}

// 烤好的披萨出餐, 匹配订单的顾客离开并得分
func (g *Game) moveToCustomer() error {
	cooked := g.oven.Pizza
	if cooked == nil {
		return codes.ErrInvalidMove
	}
	for i, c := range g.customers {
		if model.IsEmptySeat(c) {
			continue
		}
		if !model.MatchOrder(cooked, c.Order) {
			continue
		}
		g.score += c.Order.PointValue
		g.customers[i] = model.EmptyCustomer()
		g.oven.Pizza = nil
		log.Debugf("customer served. game=%s customer=%s score=%d", g.ID(), c.Name, g.score)
		return nil
	}
	// 没有顾客要这张披萨, 披萨留在烤箱里
	return codes.ErrInvalidMove
}

// Tick 顾客倒计时与补位, 每个补位周期调用一次
func (g *Game) Tick() bool {
	if g.Status() != game.StInProgress {
		return false
	}

	changed := false
	interval := int32(g.c.SpawnIntervalSec)
	for i, c := range g.customers {
		if model.IsEmptySeat(c) {
			continue
		}
		c.TimeRemaining -= interval
		changed = true
		if c.TimeRemaining <= 0 {
			// 等太久, 顾客离开
			g.customers[i] = model.EmptyCustomer()
		}
	}

	// 每个周期至多补一位新顾客
	for i, c := range g.customers {
		if model.IsEmptySeat(c) {
			g.customers[i] = model.RandomCustomer(g.c.Difficulty, g.c.CustomerTimeoutSec)
			changed = true
			break
		}
	}
	return changed
}

// Scores 各玩家得分. 合作模式下所有人共享总分.
func (g *Game) Scores() map[string]int32 {
	scores := make(map[string]int32, g.PlayerCount())
	for _, pid := range g.Players() {
		scores[pid] = g.score
	}
	return scores
}

func (g *Game) Score() int32 { return g.score }

// Snapshot 深拷贝游戏状态
func (g *Game) Snapshot() *v1.GameState {
	st := &v1.GameState{
		Status:       g.Status().String(),
		CurrentScore: g.score,
		Oven:         &v1.Oven{},
		Difficulty:   g.c.Difficulty,
	}
	if g.oven.Pizza != nil {
		st.Oven.Pizza = &v1.Pizza{}
		if err := copier.CopyWithOption(st.Oven.Pizza, g.oven.Pizza, copier.Option{DeepCopy: true}); err != nil {
			log.Errorf("snapshot copy oven failed: %v", err)
		}
	}
	if g.pizza != nil {
		st.CurrentPizza = &v1.Pizza{}
		if err := copier.CopyWithOption(st.CurrentPizza, g.pizza, copier.Option{DeepCopy: true}); err != nil {
			log.Errorf("snapshot copy pizza failed: %v", err)
		}
	}
	if err := copier.CopyWithOption(&st.CurrentCustomers, &g.customers, copier.Option{DeepCopy: true}); err != nil {
		log.Errorf("snapshot copy customers failed: %v", err)
	}
	return st
}

func (g *Game) takePizzaID() int32 {
	id := g.nextPizzaID
	g.nextPizzaID++
	return id
}
