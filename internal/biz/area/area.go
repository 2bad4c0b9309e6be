package area

import (
	"context"
	"fmt"

	"github.com/yola1107/kratos/v2/library/work"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/game"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/conf"
)

// Area 一个游戏区域: 承载在场玩家, 至多一个进行中的游戏会话.
// 所有命令通过单协程任务循环串行执行, 区域之间互不阻塞.
type Area struct {
	ID       int32
	MaxCnt   int16
	isClosed bool
	repo     Repo

	ctx    context.Context
	cancel context.CancelFunc
	loop   work.Loop
	timer  work.Scheduler

	mLog   *Log
	seats  []*player.Player
	sitCnt int16

	engine       game.Engine     // 当前会话, 可为 nil
	history      []*v1.GameResult // 已结束会话的结果
	spawnTimerID int64            // 顾客补位定时器
}

func NewArea(id int32, c *conf.Room, repo Repo) *Area {
	ctx, cancel := context.WithCancel(context.Background())
	loop := work.NewLoop(work.WithSize(1))
	t := &Area{
		ID:     id,
		MaxCnt: int16(c.Area.Capacity),
		repo:   repo,
		ctx:    ctx,
		cancel: cancel,
		loop:   loop,
		timer: work.NewScheduler(
			work.WithContext(ctx),
			work.WithExecutor(loop),
		),
		mLog:         NewAreaLog(id, c.LogCache),
		seats:        make([]*player.Player, c.Area.Capacity),
		spawnTimerID: -1,
	}
	return t
}

// Start 启动区域任务循环
func (t *Area) Start() error {
	return t.loop.Start()
}

// Close 停止区域
func (t *Area) Close() {
	t.isClosed = true
	t.cancel()
	t.timer.Stop()
	t.loop.Stop()
	_ = t.mLog.Close()
}

// Post 异步投递任务到区域循环
func (t *Area) Post(f func()) {
	t.loop.Post(f)
}

// Sync 同步投递任务并等待结果
func (t *Area) Sync(f func() ([]byte, error)) ([]byte, error) {
	return t.loop.PostAndWait(f)
}

func (t *Area) Desc() string {
	st := "nil"
	if t.engine != nil {
		st = t.engine.Status().String()
	}
	return fmt.Sprintf("(A:%d SitCnt:%d St:%s Hist:%d)", t.ID, t.sitCnt, st, len(t.history))
}

func (t *Area) Empty() bool {
	return t.sitCnt <= 0
}

func (t *Area) IsFull() bool {
	return t.sitCnt >= t.MaxCnt
}

func (t *Area) GetSitCnt() int32 {
	return int32(t.sitCnt)
}

// GetEngine 当前游戏会话, 可为 nil
func (t *Area) GetEngine() game.Engine {
	return t.engine
}

// History 已结束会话的结果 (只读)
func (t *Area) History() []*v1.GameResult {
	return t.history
}

// ThrowInto 玩家进入区域
func (t *Area) ThrowInto(p *player.Player) bool {
	if p == nil || t.isClosed || t.IsFull() {
		return false
	}
	for k, v := range t.seats {
		if v != nil {
			continue
		}
		t.seats[k] = p
		t.sitCnt++
		p.SetAreaID(t.ID)

		// 广播区域变化 (在场名单变更)
		t.broadcastAreaChanged()

		t.mLog.userEnter(p, t.sitCnt)
		log.Infof("EnterArea. p:%+v sitCnt:%d", p.Desc(), t.sitCnt)
		return true
	}
	return false
}

// ThrowOff 玩家离开区域. 若其仍在游戏会话中, 先替他退出会话.
func (t *Area) ThrowOff(p *player.Player) bool {
	if p == nil {
		return false
	}
	seat := t.findSeat(p)
	if seat < 0 {
		return false
	}

	if t.engine != nil && !t.engine.Status().Terminal() && t.engine.HasPlayer(p.GetPlayerID()) {
		scores := t.engine.Scores()
		if err := t.engine.Leave(p.GetPlayerID()); err != nil {
			log.Warnf("ThrowOff leave game failed. p:%+v err:%v", p.Desc(), err)
		}
		if t.engine.Status().Terminal() {
			t.finishGame(scores)
		}
	}

	t.seats[seat] = nil
	t.sitCnt--

	t.broadcastUserQuitPush(p)
	t.broadcastAreaChanged()

	p.ExitReset()

	t.mLog.userExit(p, t.sitCnt)
	log.Infof("ExitArea. p:%+v sitCnt:%d", p.Desc(), t.sitCnt)
	return true
}

func (t *Area) findSeat(p *player.Player) int {
	for k, v := range t.seats {
		if v == p {
			return k
		}
	}
	return -1
}

func (t *Area) GetPlayers() (players []*player.Player) {
	for _, v := range t.seats {
		if v == nil {
			continue
		}
		players = append(players, v)
	}
	return players
}
