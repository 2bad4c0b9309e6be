package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
)

func TestSameToppings(t *testing.T) {
	mk := func(kinds ...string) []*v1.Topping {
		ts := make([]*v1.Topping, 0, len(kinds))
		for i, k := range kinds {
			ts = append(ts, &v1.Topping{ID: int32(i), Kind: k})
		}
		return ts
	}

	assert.True(t, SameToppings(nil, nil))
	assert.True(t, SameToppings(mk("olives"), mk("olives")))
	// 顺序无关
	assert.True(t, SameToppings(mk("olives", "sausage"), mk("sausage", "olives")))
	// 多重集合: 数量必须一致
	assert.False(t, SameToppings(mk("olives", "olives"), mk("olives")))
	assert.False(t, SameToppings(mk("olives", "olives", "sausage"), mk("olives", "sausage", "sausage")))
	assert.False(t, SameToppings(mk("olives"), mk("onions")))
}

func TestRandomOrder(t *testing.T) {
	for difficulty := int32(1); difficulty <= 3; difficulty++ {
		order := RandomOrder(difficulty)
		require.Len(t, order.Pizzas, 1)
		assert.Len(t, order.Pizzas[0].Toppings, OrderSize(difficulty))
		assert.EqualValues(t, 1, order.PointValue)
		for _, topping := range order.Pizzas[0].Toppings {
			assert.Contains(t, ToppingKinds, topping.Kind)
		}
	}
}

func TestRandomCustomer(t *testing.T) {
	c := RandomCustomer(2, 30)
	assert.NotEmpty(t, c.ID)
	assert.NotEmpty(t, c.Name)
	assert.False(t, c.Completed)
	assert.EqualValues(t, 30, c.TimeRemaining)
	assert.False(t, IsEmptySeat(c))
}

func TestEmptyCustomer(t *testing.T) {
	c := EmptyCustomer()
	assert.True(t, c.Completed)
	assert.True(t, IsEmptySeat(c))
	assert.EqualValues(t, 0, c.TimeRemaining)
	assert.Empty(t, c.Order.Pizzas)

	// 占位顾客ID不能重复
	assert.NotEqual(t, c.ID, EmptyCustomer().ID)
}

func TestMatchOrder(t *testing.T) {
	pizza := &v1.Pizza{Toppings: []*v1.Topping{{Kind: "olives"}, {Kind: "sausage"}}}
	order := &v1.Order{Pizzas: []*v1.Pizza{{Toppings: []*v1.Topping{{Kind: "sausage"}, {Kind: "olives"}}}}}
	assert.True(t, MatchOrder(pizza, order))

	assert.False(t, MatchOrder(nil, order))
	assert.False(t, MatchOrder(pizza, nil))
	assert.False(t, MatchOrder(pizza, &v1.Order{}))
	assert.False(t, MatchOrder(&v1.Pizza{}, order))
}
