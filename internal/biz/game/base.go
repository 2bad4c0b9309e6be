package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/yola1107/arcade/pkg/codes"
)

// Base 通用会话生命周期. 玩法引擎内嵌 Base,
// 只需要实现 Move/Tick/Snapshot 等玩法逻辑.
type Base struct {
	id        string
	status    Status
	players   []string
	maxPlayer int
	minPlayer int
}

func NewBase(maxPlayer, minPlayer int32) *Base {
	return &Base{
		id:        uuid.NewString(),
		status:    StWaitingForPlayers,
		maxPlayer: int(maxPlayer),
		minPlayer: int(minPlayer),
	}
}

func (b *Base) ID() string     { return b.id }
func (b *Base) Status() Status { return b.status }

// SetStatus 仅供玩法引擎内部转移状态
func (b *Base) SetStatus(s Status) { b.status = s }

func (b *Base) Players() []string {
	return append([]string(nil), b.players...)
}

func (b *Base) HasPlayer(pid string) bool {
	return lo.Contains(b.players, pid)
}

func (b *Base) PlayerCount() int {
	return len(b.players)
}

func (b *Base) Desc() string {
	return fmt.Sprintf("(G:%s St:%s Cnt:%d)", b.id, b.status, len(b.players))
}

// Join 玩家加入会话. 仅等人/候开阶段可进.
func (b *Base) Join(pid string) error {
	if b.status.Terminal() {
		return codes.ErrGameNotInProgress
	}
	if b.HasPlayer(pid) {
		return codes.ErrAlreadyInGame
	}
	if b.status == StInProgress {
		return codes.ErrGameFull
	}
	if len(b.players) >= b.maxPlayer {
		return codes.ErrGameFull
	}
	b.players = append(b.players, pid)
	if b.status == StWaitingForPlayers && len(b.players) >= b.minPlayer {
		b.status = StWaitingToStart
	}
	return nil
}

// Leave 玩家离开会话.
// 进行中离开直接终结本局, 开局前离开则回退到等人状态.
func (b *Base) Leave(pid string) error {
	if b.status.Terminal() {
		return codes.ErrGameNotInProgress
	}
	if !b.HasPlayer(pid) {
		return codes.ErrPlayerNotInGame
	}
	b.players = lo.Without(b.players, pid)

	switch b.status {
	case StInProgress:
		b.status = StOver
	case StWaitingToStart:
		if len(b.players) < b.minPlayer {
			b.status = StWaitingForPlayers
		}
	default:
	}
	return nil
}

// Start 请求开局
func (b *Base) Start(pid string) error {
	if b.status != StWaitingToStart {
		return codes.ErrGameNotStartable
	}
	if !b.HasPlayer(pid) {
		return codes.ErrPlayerNotInGame
	}
	b.status = StInProgress
	return nil
}

// RequireInProgress 操作前置校验
func (b *Base) RequireInProgress(pid string) error {
	if b.status != StInProgress {
		return codes.ErrGameNotInProgress
	}
	if !b.HasPlayer(pid) {
		return codes.ErrPlayerNotInGame
	}
	return nil
}
