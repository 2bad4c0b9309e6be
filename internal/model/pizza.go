package model

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/samber/lo"
	ext "github.com/yola1107/kratos/v2/library/xgo"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
)

// ToppingKinds 可选配料
var ToppingKinds = []string{
	"pepperoni",
	"mushrooms",
	"anchovies",
	"olives",
	"onions",
	"peppers",
	"sausage",
}

// CustomerNames 顾客名字池
var CustomerNames = []string{
	"Aria", "Bella", "Carlo", "Dino", "Enzo",
	"Fabio", "Gina", "Luca", "Marco", "Nina",
	"Paolo", "Rosa", "Sofia", "Tony", "Vito",
}

// OrderSize 难度对应的单张披萨配料数
func OrderSize(difficulty int32) int {
	switch {
	case difficulty <= 1:
		return 1
	case difficulty == 2:
		return 2
	default:
		return 3
	}
}

// NewPizza 创建一张空披萨
func NewPizza(id int32) *v1.Pizza {
	return &v1.Pizza{ID: id, Toppings: nil, Cooked: false}
}

// RandomToppings 随机 n 个配料 (可重复)
func RandomToppings(n int) []*v1.Topping {
	toppings := make([]*v1.Topping, 0, n)
	for i := 0; i < n; i++ {
		kind := ToppingKinds[ext.RandInt(0, len(ToppingKinds))]
		toppings = append(toppings, &v1.Topping{
			ID:   int32(i + 1),
			Kind: kind,
		})
	}
	return toppings
}

// RandomOrder 按难度生成随机订单
func RandomOrder(difficulty int32) *v1.Order {
	pizza := NewPizza(0)
	pizza.Toppings = RandomToppings(OrderSize(difficulty))
	return &v1.Order{
		Pizzas:     []*v1.Pizza{pizza},
		PointValue: 1,
	}
}

// RandomCustomer 生成随机顾客
func RandomCustomer(difficulty, timeoutSec int32) *v1.Customer {
	id, _ := gonanoid.New()
	return &v1.Customer{
		ID:            id,
		Name:          CustomerNames[ext.RandInt(0, len(CustomerNames))],
		TimeRemaining: timeoutSec,
		Completed:     false,
		Order:         RandomOrder(difficulty),
	}
}

// EmptyCustomer 空顾客位占位
func EmptyCustomer() *v1.Customer {
	id, _ := gonanoid.New()
	return &v1.Customer{
		ID:            id,
		Name:          "Empty",
		TimeRemaining: 0,
		Completed:     true,
		Order:         &v1.Order{Pizzas: nil, PointValue: 0},
	}
}

// IsEmptySeat 顾客位是否空闲 (占位或已完成)
func IsEmptySeat(c *v1.Customer) bool {
	return c == nil || c.Completed
}

// SameToppings 按配料种类做多重集合比较, 与顺序无关
func SameToppings(a, b []*v1.Topping) bool {
	if len(a) != len(b) {
		return false
	}
	kinds := func(ts []*v1.Topping) map[string]int {
		return lo.CountValuesBy(ts, func(t *v1.Topping) string { return t.Kind })
	}
	ka, kb := kinds(a), kinds(b)
	for k, v := range ka {
		if kb[k] != v {
			return false
		}
	}
	return true
}

// MatchOrder 披萨是否满足订单 (只看第一张)
func MatchOrder(pizza *v1.Pizza, order *v1.Order) bool {
	if pizza == nil || order == nil || len(order.Pizzas) == 0 {
		return false
	}
	return SameToppings(pizza.Toppings, order.Pizzas[0].Toppings)
}
