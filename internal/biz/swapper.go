package biz

import (
	"context"

	"github.com/yola1107/arcade/internal/biz/area"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/ws"
	"github.com/yola1107/arcade/pkg/codes"
)

// SwapperInfo 从请求上下文解析出的玩家与区域
type SwapperInfo struct {
	Err    error
	Player *player.Player
	Area   *area.Area
}

func (uc *Usecase) Swapper(ctx context.Context) (r *SwapperInfo) {
	session := uc.GetSession(ctx)
	if session == nil {
		return &SwapperInfo{Err: codes.ErrSessionNotFound}
	}

	p := uc.pm.GetBySessionID(session.ID())
	if p == nil {
		return &SwapperInfo{Err: codes.ErrPlayerNotFound}
	}

	t := uc.am.GetArea(p.GetAreaID())
	if t == nil {
		return &SwapperInfo{Err: codes.ErrAreaNotFound}
	}

	return &SwapperInfo{
		Player: p,
		Area:   t,
	}
}

func (uc *Usecase) GetSession(ctx context.Context) *ws.Session {
	return ws.SessionFromCtx(ctx)
}
