package game

import (
	"fmt"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
)

// Status 游戏会话状态
type Status int32

const (
	StWaitingForPlayers Status = iota // 等待玩家
	StWaitingToStart                  // 可开局
	StInProgress                      // 进行中
	StOver                            // 已结束
)

// String 返回与协议一致的状态字符串
func (s Status) String() string {
	switch s {
	case StWaitingForPlayers:
		return v1.StatusWaitingForPlayers
	case StWaitingToStart:
		return v1.StatusWaitingToStart
	case StInProgress:
		return v1.StatusInProgress
	case StOver:
		return v1.StatusOver
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Terminal 会话是否已终结
func (s Status) Terminal() bool {
	return s == StOver
}

// Engine 单局游戏引擎. 区域只依赖此接口,
// 不同玩法通过替换引擎实现接入.
// 引擎方法都在区域的任务循环内被调用, 无需自行加锁.
type Engine interface {
	ID() string
	Status() Status
	Players() []string
	HasPlayer(pid string) bool
	Scores() map[string]int32

	Join(pid string) error
	Leave(pid string) error
	Start(pid string) error
	Move(pid string, mv *v1.Move) error

	// Tick 周期回调 (顾客倒计时/补位等), 返回状态是否变化
	Tick() bool

	// Snapshot 深拷贝当前游戏状态
	Snapshot() *v1.GameState
}
