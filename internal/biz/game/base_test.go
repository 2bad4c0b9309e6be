package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yola1107/arcade/pkg/codes"
)

func TestBaseJoin(t *testing.T) {
	b := NewBase(2, 1)
	assert.Equal(t, StWaitingForPlayers, b.Status())
	assert.NotEmpty(t, b.ID())

	require.NoError(t, b.Join("p1"))
	assert.Equal(t, StWaitingToStart, b.Status())
	assert.True(t, b.HasPlayer("p1"))

	// 重复加入
	err := b.Join("p1")
	assert.True(t, errors.Is(err, codes.ErrAlreadyInGame))

	require.NoError(t, b.Join("p2"))
	// 满员
	err = b.Join("p3")
	assert.True(t, errors.Is(err, codes.ErrGameFull))
	assert.Equal(t, 2, b.PlayerCount())
}

func TestBaseJoinInProgress(t *testing.T) {
	b := NewBase(4, 1)
	require.NoError(t, b.Join("p1"))
	require.NoError(t, b.Start("p1"))

	// 开局后有空位也不能再进
	err := b.Join("p2")
	assert.True(t, errors.Is(err, codes.ErrGameFull))
	assert.Equal(t, 1, b.PlayerCount())
	assert.Equal(t, StInProgress, b.Status())
}

func TestBaseStart(t *testing.T) {
	b := NewBase(2, 2)

	require.NoError(t, b.Join("p1"))
	// 人数不足, 仍在等人
	assert.Equal(t, StWaitingForPlayers, b.Status())
	err := b.Start("p1")
	assert.True(t, errors.Is(err, codes.ErrGameNotStartable))

	require.NoError(t, b.Join("p2"))
	assert.Equal(t, StWaitingToStart, b.Status())

	// 非会话成员不能开局
	err = b.Start("p3")
	assert.True(t, errors.Is(err, codes.ErrPlayerNotInGame))

	require.NoError(t, b.Start("p1"))
	assert.Equal(t, StInProgress, b.Status())

	// 已开局不能重复开
	err = b.Start("p2")
	assert.True(t, errors.Is(err, codes.ErrGameNotStartable))
}

func TestBaseLeave(t *testing.T) {
	b := NewBase(2, 1)
	require.NoError(t, b.Join("p1"))

	err := b.Leave("p2")
	assert.True(t, errors.Is(err, codes.ErrPlayerNotInGame))

	// 开局前离开, 回退到等人状态
	require.NoError(t, b.Leave("p1"))
	assert.Equal(t, StWaitingForPlayers, b.Status())
	assert.False(t, b.HasPlayer("p1"))
}

func TestBaseLeaveInProgress(t *testing.T) {
	b := NewBase(1, 1)
	require.NoError(t, b.Join("p1"))
	require.NoError(t, b.Start("p1"))

	// 进行中离开直接终结本局
	require.NoError(t, b.Leave("p1"))
	assert.Equal(t, StOver, b.Status())
	assert.True(t, b.Status().Terminal())

	// 终结后一切操作都拒绝
	assert.True(t, errors.Is(b.Join("p2"), codes.ErrGameNotInProgress))
	assert.True(t, errors.Is(b.Leave("p1"), codes.ErrGameNotInProgress))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "WAITING_FOR_PLAYERS", StWaitingForPlayers.String())
	assert.Equal(t, "WAITING_TO_START", StWaitingToStart.String())
	assert.Equal(t, "IN_PROGRESS", StInProgress.String())
	assert.Equal(t, "OVER", StOver.String())
}

func TestRequireInProgress(t *testing.T) {
	b := NewBase(1, 1)
	assert.True(t, errors.Is(b.RequireInProgress("p1"), codes.ErrGameNotInProgress))

	require.NoError(t, b.Join("p1"))
	require.NoError(t, b.Start("p1"))
	assert.NoError(t, b.RequireInProgress("p1"))
	assert.True(t, errors.Is(b.RequireInProgress("p9"), codes.ErrPlayerNotInGame))
}
