package press

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	ext "github.com/yola1107/kratos/v2/library/xgo"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/mirror"
	"github.com/yola1107/arcade/internal/model"
	"github.com/yola1107/arcade/internal/ws"
)

// User 一个模拟玩家
type User struct {
	runner *Runner
	id     int64

	client atomic.Pointer[ws.Client]
	mirror atomic.Pointer[mirror.Mirror]
	joined atomic.Bool
}

func NewUser(id int64, r *Runner) *User {
	return &User{runner: r, id: id}
}

// Init 建连并登录
func (u *User) Init() {
	client, err := ws.NewClient(ws.WithURL(u.runner.GetURL()))
	if err != nil {
		log.Warnf("user %d dial failed: %v", u.id, err)
		return
	}

	rsp := &v1.LoginRsp{}
	req := &v1.LoginReq{Name: fmt.Sprintf("press_%d", u.id)}
	if err = client.Request(u.runner.GetContext(), v1.CmdLogin, req, rsp); err != nil {
		log.Warnf("user %d login failed: %v", u.id, err)
		client.Close()
		return
	}

	m := mirror.New(rsp.PlayerID, &commander{client: client, ctx: u.runner.GetContext()})
	m.OnScoreChanged(func(score int32) {
		log.Infof("user %d score=%d", u.id, score)
	})
	client.OnPush(v1.PushAreaChanged, func(body []byte) {
		snap := &v1.AreaSnapshot{}
		if err := json.Unmarshal(body, snap); err != nil {
			log.Warnf("user %d bad snapshot: %v", u.id, err)
			return
		}
		m.Update(snap)
	})
	m.Update(rsp.Scene)

	u.client.Store(client)
	u.mirror.Store(m)
	log.Infof("user %d logged in. player=%s area=%d", u.id, rsp.PlayerID, rsp.AreaID)
}

// Step 行为驱动: 未入局则尝试加入/开局, 进行中随机操作
func (u *User) Step() {
	m := u.mirror.Load()
	if m == nil {
		return
	}
	ctx := u.runner.GetContext()

	switch {
	case !u.joined.Load():
		if _, err := m.Join(ctx); err != nil {
			return
		}
		u.joined.Store(true)
	case m.Status() == v1.StatusWaitingToStart:
		_ = m.Start(ctx)
	case m.Status() == v1.StatusInProgress:
		_ = m.Move(ctx, u.randomMove(m))
	case m.Status() == v1.StatusOver:
		u.joined.Store(false)
	}
}

func (u *User) randomMove(m *mirror.Mirror) *v1.Move {
	switch ext.RandInt(0, 4) {
	case 0:
		kind := model.ToppingKinds[ext.RandInt(0, len(model.ToppingKinds))]
		return &v1.Move{GamePiece: v1.PiecePlaceTopping, Topping: &v1.Topping{Kind: kind}}
	case 1:
		return &v1.Move{GamePiece: v1.PieceMoveToOven}
	case 2:
		return &v1.Move{GamePiece: v1.PieceMoveToCustomer}
	default:
		return &v1.Move{GamePiece: v1.PieceThrowOut}
	}
}

func (u *User) Release() {
	if c := u.client.Load(); c != nil {
		c.Close()
		u.client.Store(nil)
	}
}

// commander 把镜像命令桥接到 websocket 客户端
type commander struct {
	client *ws.Client
	ctx    context.Context
}

func (c *commander) GameCommand(ctx context.Context, in *v1.GameCommandReq) (*v1.GameCommandRsp, error) {
	rsp := &v1.GameCommandRsp{}
	if err := c.client.Request(ctx, v1.CmdGameCommand, in, rsp); err != nil {
		return nil, err
	}
	return rsp, nil
}
