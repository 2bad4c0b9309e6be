package area

import (
	"time"

	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/pkg/codes"
)

// OnGameCommand 区域命令统一入口.
// 成功的命令恰好广播一次区域快照, 失败不广播.
func (t *Area) OnGameCommand(p *player.Player, in *v1.GameCommandReq) (*v1.GameCommandRsp, error) {
	if p == nil || in == nil {
		return nil, codes.ErrInvalidCommand
	}

	switch in.Type {
	case v1.CommandJoinGame:
		return t.onJoinGame(p)
	case v1.CommandStartGame:
		return t.onStartGame(p, in.GameID)
	case v1.CommandGameMove:
		return t.onGameMove(p, in.GameID, in.Move)
	case v1.CommandLeaveGame:
		return t.onLeaveGame(p, in.GameID)
	default:
		t.mLog.badCommand(p, string(in.Type))
		return nil, codes.ErrInvalidCommand
	}
}

// onJoinGame 加入会话. 无会话或上一局已结束时自动开新会话.
func (t *Area) onJoinGame(p *player.Player) (*v1.GameCommandRsp, error) {
	if t.engine == nil || t.engine.Status().Terminal() {
		t.engine = t.repo.NewEngine()
		t.mLog.gameCreated(t.engine.ID())
		log.Infof("NewGameSession. area=%d game=%s", t.ID, t.engine.ID())
	}

	if err := t.engine.Join(p.GetPlayerID()); err != nil {
		return nil, err
	}

	t.mLog.gameJoin(p, t.engine.ID())
	t.broadcastAreaChanged()
	return &v1.GameCommandRsp{GameID: t.engine.ID()}, nil
}

// onStartGame 开局, 并启动顾客补位定时器
func (t *Area) onStartGame(p *player.Player, gameID string) (*v1.GameCommandRsp, error) {
	if err := t.requireSession(gameID); err != nil {
		return nil, err
	}
	if err := t.engine.Start(p.GetPlayerID()); err != nil {
		return nil, err
	}

	t.scheduleSpawn()
	t.mLog.gameStart(p, t.engine.ID())
	t.broadcastAreaChanged()
	return &v1.GameCommandRsp{GameID: t.engine.ID()}, nil
}

// onGameMove 游戏内操作
func (t *Area) onGameMove(p *player.Player, gameID string, mv *v1.Move) (*v1.GameCommandRsp, error) {
	if err := t.requireSession(gameID); err != nil {
		return nil, err
	}
	if err := t.engine.Move(p.GetPlayerID(), mv); err != nil {
		return nil, err
	}

	t.mLog.gameMove(p, mv)
	if t.engine.Status().Terminal() {
		t.finishGame(t.engine.Scores())
	}
	t.broadcastAreaChanged()
	return &v1.GameCommandRsp{GameID: gameID}, nil
}

// onLeaveGame 退出会话. 进行中退出会终结本局.
func (t *Area) onLeaveGame(p *player.Player, gameID string) (*v1.GameCommandRsp, error) {
	if err := t.requireSession(gameID); err != nil {
		return nil, err
	}

	// 得分在退出前取, 终局结算要包含退出者
	scores := t.engine.Scores()
	if err := t.engine.Leave(p.GetPlayerID()); err != nil {
		return nil, err
	}

	t.mLog.gameLeave(p, gameID)
	if t.engine.Status().Terminal() {
		t.finishGame(scores)
	}
	t.broadcastAreaChanged()
	return &v1.GameCommandRsp{GameID: gameID}, nil
}

// requireSession 非 Join 命令的前置校验:
// 必须存在未终结的会话, 且命令携带的 GameID 与之一致.
func (t *Area) requireSession(gameID string) error {
	if t.engine == nil || t.engine.Status().Terminal() {
		return codes.ErrGameNotInProgress
	}
	if gameID != t.engine.ID() {
		return codes.ErrGameIDMismatch
	}
	return nil
}

// finishGame 会话终结: 记录历史, 落库, 停掉补位定时器.
// 得分由调用方在名单变动前取出传入.
func (t *Area) finishGame(scores map[string]int32) {
	if t.engine == nil {
		return
	}
	t.cancelSpawn()

	r := &v1.GameResult{
		GameID:  t.engine.ID(),
		Scores:  scores,
		EndedAt: time.Now().Unix(),
	}
	t.history = append(t.history, r)
	if limit := int(t.repo.GetRoomConfig().Game.HistoryLimit); limit > 0 && len(t.history) > limit {
		t.history = t.history[len(t.history)-limit:]
	}
	t.repo.SaveResult(t.ctx, t.ID, r)

	t.mLog.gameOver(r)
	log.Infof("GameOver. area=%d game=%s scores=%v", t.ID, r.GameID, r.Scores)
}

func (t *Area) scheduleSpawn() {
	t.cancelSpawn()
	interval := time.Duration(t.repo.GetRoomConfig().Game.SpawnIntervalSec) * time.Second
	t.spawnTimerID = t.timer.Forever(interval, t.onSpawnTick)
}

func (t *Area) cancelSpawn() {
	if t.spawnTimerID >= 0 {
		t.timer.Cancel(t.spawnTimerID)
		t.spawnTimerID = -1
	}
}

// onSpawnTick 定时器回调, 经由区域循环执行
func (t *Area) onSpawnTick() {
	if t.engine == nil || t.engine.Status().Terminal() {
		t.cancelSpawn()
		return
	}
	if t.engine.Tick() {
		t.broadcastAreaChanged()
	}
}
