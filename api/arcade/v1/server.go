package v1

import (
	"context"

	"github.com/yola1107/arcade/internal/ws"
)

// ArcadeServer 服务端命令处理接口
type ArcadeServer interface {
	Login(ctx context.Context, in *LoginReq) (*LoginRsp, error)
	Logout(ctx context.Context, in *LogoutReq) (*LogoutRsp, error)
	Scene(ctx context.Context, in *SceneReq) (*SceneRsp, error)
	GameCommand(ctx context.Context, in *GameCommandReq) (*GameCommandRsp, error)
}

// RegisterArcadeWebsocketServer 将命令字绑定到 websocket 服务
func RegisterArcadeWebsocketServer(srv *ws.Server, impl ArcadeServer) {
	srv.RegisterHandler(CmdLogin, func(ctx context.Context, body []byte) (any, error) {
		in := &LoginReq{}
		if err := ws.DecodeBody(body, in); err != nil {
			return nil, err
		}
		return impl.Login(ctx, in)
	})
	srv.RegisterHandler(CmdLogout, func(ctx context.Context, body []byte) (any, error) {
		in := &LogoutReq{}
		if err := ws.DecodeBody(body, in); err != nil {
			return nil, err
		}
		return impl.Logout(ctx, in)
	})
	srv.RegisterHandler(CmdScene, func(ctx context.Context, body []byte) (any, error) {
		in := &SceneReq{}
		if err := ws.DecodeBody(body, in); err != nil {
			return nil, err
		}
		return impl.Scene(ctx, in)
	})
	srv.RegisterHandler(CmdGameCommand, func(ctx context.Context, body []byte) (any, error) {
		in := &GameCommandReq{}
		if err := ws.DecodeBody(body, in); err != nil {
			return nil, err
		}
		return impl.GameCommand(ctx, in)
	})
}
