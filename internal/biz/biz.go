package biz

import (
	"context"
	"encoding/json"

	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/area"
	"github.com/yola1107/arcade/internal/biz/game"
	"github.com/yola1107/arcade/internal/biz/pizza"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/conf"
	"github.com/yola1107/arcade/pkg/codes"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(NewUsecase)

// 实现区域仓储接口
var _ area.Repo = (*Usecase)(nil)

// DataRepo is a data repo.
type DataRepo interface {
	SaveResult(ctx context.Context, areaID int32, r *v1.GameResult) error
	LoadHistory(ctx context.Context, areaID int32, limit int64) ([]*v1.GameResult, error)
}

// Usecase 房间业务: 玩家与区域的管理, 命令派发
type Usecase struct {
	repo DataRepo
	log  *log.Helper

	rc *conf.Room
	pm *player.Manager
	am *area.Manager
}

// NewUsecase new a room usecase.
func NewUsecase(repo DataRepo, logger log.Logger, c *conf.Room) (*Usecase, func(), error) {
	uc := &Usecase{repo: repo, log: log.NewHelper(logger)}
	uc.rc = c
	uc.pm = player.NewManager()
	uc.am = area.NewManager(c, uc)

	cleanup := func() {
		log.NewHelper(logger).Info("closing the Room resources")
		uc.pm.Close()
		uc.am.Close()
	}
	return uc, cleanup, uc.am.Start()
}

// GetRoomConfig 获取房间配置
func (uc *Usecase) GetRoomConfig() *conf.Room {
	return uc.rc
}

// NewEngine 创建一局新游戏
func (uc *Usecase) NewEngine() game.Engine {
	return pizza.NewGame(uc.rc.Game)
}

// SaveResult 对局结果落库. redis 写走独立协程,
// 不占区域循环, 失败只记日志.
func (uc *Usecase) SaveResult(ctx context.Context, areaID int32, r *v1.GameResult) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := uc.repo.SaveResult(ctx, areaID, r); err != nil {
			uc.log.Errorf("save result failed. area=%d game=%s err=%v", areaID, r.GameID, err)
		}
	}()
}

// LogoutGame 通知并移除玩家
func (uc *Usecase) LogoutGame(p *player.Player, code int32, msg string) {
	if p == nil {
		return
	}
	if sess := p.GetSession(); sess != nil {
		_ = sess.Push(v1.PushPlayerQuit, &v1.PlayerQuitPush{
			PlayerID: p.GetPlayerID(),
			Code:     code,
			Msg:      msg,
		})
	}
	uc.pm.Remove(p.GetPlayerID())
}

// Login 玩家登录: 创建玩家, 分配区域, 返回场景快照
func (uc *Usecase) Login(ctx context.Context, in *v1.LoginReq) (*v1.LoginRsp, error) {
	sess := uc.GetSession(ctx)
	if sess == nil {
		return nil, codes.ErrSessionNotFound
	}
	if p := uc.pm.GetBySessionID(sess.ID()); p != nil {
		// 重复登录, 直接返回当前场景
		return uc.loginRsp(p)
	}

	p, err := uc.pm.CreatePlayer(in.Name, sess)
	if err != nil {
		uc.log.Errorf("create player failed: %v", err)
		return nil, codes.ErrFail
	}

	if _, err = uc.am.ThrowInto(p); err != nil {
		uc.pm.Remove(p.GetPlayerID())
		return nil, err
	}
	return uc.loginRsp(p)
}

func (uc *Usecase) loginRsp(p *player.Player) (*v1.LoginRsp, error) {
	t := uc.am.GetArea(p.GetAreaID())
	if t == nil {
		return nil, codes.ErrAreaNotFound
	}
	var snap *v1.AreaSnapshot
	_, _ = t.Sync(func() ([]byte, error) {
		snap = t.BuildSnapshot()
		return nil, nil
	})
	return &v1.LoginRsp{
		PlayerID: p.GetPlayerID(),
		AreaID:   t.ID,
		Scene:    snap,
	}, nil
}

// Logout 玩家登出
func (uc *Usecase) Logout(ctx context.Context, _ *v1.LogoutReq) (*v1.LogoutRsp, error) {
	r := uc.Swapper(ctx)
	if r.Err != nil {
		return nil, r.Err
	}
	uc.am.ThrowOff(r.Player)
	uc.LogoutGame(r.Player, codes.SUCCESS, "logout")
	return &v1.LogoutRsp{}, nil
}

// Scene 请求区域场景快照 (断线重连)
func (uc *Usecase) Scene(ctx context.Context, _ *v1.SceneReq) (*v1.SceneRsp, error) {
	r := uc.Swapper(ctx)
	if r.Err != nil {
		return nil, r.Err
	}
	var snap *v1.AreaSnapshot
	_, _ = r.Area.Sync(func() ([]byte, error) {
		snap = r.Area.BuildSnapshot()
		return nil, nil
	})
	return &v1.SceneRsp{Scene: snap}, nil
}

// GameCommand 区域游戏命令, 在区域循环内串行执行
func (uc *Usecase) GameCommand(ctx context.Context, in *v1.GameCommandReq) (*v1.GameCommandRsp, error) {
	r := uc.Swapper(ctx)
	if r.Err != nil {
		return nil, r.Err
	}

	raw, err := r.Area.Sync(func() ([]byte, error) {
		rsp, err := r.Area.OnGameCommand(r.Player, in)
		if err != nil {
			return nil, err
		}
		return json.Marshal(rsp)
	})
	if err != nil {
		return nil, err
	}

	rsp := &v1.GameCommandRsp{}
	if err = json.Unmarshal(raw, rsp); err != nil {
		return nil, codes.ErrFail
	}
	return rsp, nil
}

// OnSessionClose 连接断开, 踢出玩家
func (uc *Usecase) OnSessionClose(sessionID string) {
	p := uc.pm.GetBySessionID(sessionID)
	if p == nil {
		return
	}
	uc.log.Infof("session closed, kick player. p:%+v", p.Desc())
	uc.am.ThrowOff(p)
	uc.LogoutGame(p, codes.ErrKickByBroke.GetCode(), "kick by broke")
}
