package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	id string
}

func (s *fakeSession) ID() string             { return s.id }
func (s *fakeSession) Push(string, any) error { return nil }

func TestCreatePlayer(t *testing.T) {
	m := NewManager()
	sess := &fakeSession{id: "sess-1"}

	p, err := m.CreatePlayer("tester", sess)
	require.NoError(t, err)
	assert.NotEmpty(t, p.GetPlayerID())
	assert.Equal(t, "tester", p.GetName())
	assert.EqualValues(t, -1, p.GetAreaID())

	assert.Same(t, p, m.Get(p.GetPlayerID()))
	assert.Same(t, p, m.GetBySessionID("sess-1"))
	assert.Equal(t, 1, m.Count())
}

func TestRemovePlayer(t *testing.T) {
	m := NewManager()
	p, err := m.CreatePlayer("tester", &fakeSession{id: "sess-1"})
	require.NoError(t, err)

	m.Remove(p.GetPlayerID())
	assert.Nil(t, m.Get(p.GetPlayerID()))
	assert.Nil(t, m.GetBySessionID("sess-1"))
	assert.Equal(t, 0, m.Count())

	// 重复移除无副作用
	m.Remove(p.GetPlayerID())
}

func TestPlayerIDsUnique(t *testing.T) {
	m := NewManager()
	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		p, err := m.CreatePlayer("x", nil)
		require.NoError(t, err)
		assert.False(t, seen[p.GetPlayerID()])
		seen[p.GetPlayerID()] = true
	}
}

func TestExitReset(t *testing.T) {
	p := NewPlayer("p1", "tester")
	p.SetAreaID(3)
	require.EqualValues(t, 3, p.GetAreaID())

	p.ExitReset()
	assert.EqualValues(t, -1, p.GetAreaID())
	// 会话绑定保留, 由管理器负责解除
	assert.Equal(t, "", p.GetSessionID())
}
