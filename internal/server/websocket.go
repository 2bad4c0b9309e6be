package server

import (
	"time"

	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/conf"
	"github.com/yola1107/arcade/internal/service"
	"github.com/yola1107/arcade/internal/ws"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewWebsocketServer)

// NewWebsocketServer new a Websocket server.
func NewWebsocketServer(c *conf.Server, svc *service.Service, logger log.Logger) *ws.Server {
	var opts []ws.ServerOption
	if c.Websocket.Network != "" {
		opts = append(opts, ws.Network(c.Websocket.Network))
	}
	if c.Websocket.Addr != "" {
		opts = append(opts, ws.Address(c.Websocket.Addr))
	}
	if c.Websocket.Path != "" {
		opts = append(opts, ws.Path(c.Websocket.Path))
	}
	if c.Websocket.TimeoutSec > 0 {
		opts = append(opts, ws.Timeout(time.Duration(c.Websocket.TimeoutSec)*time.Second))
	}

	srv := ws.NewServer(opts...)
	srv.OnSessionOpen(svc.OnSessionOpen)
	srv.OnSessionClose(svc.OnSessionClose)
	v1.RegisterArcadeWebsocketServer(srv, svc)
	return srv
}
