package service

import (
	"context"

	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz"
	"github.com/yola1107/arcade/internal/conf"
	"github.com/yola1107/arcade/internal/ws"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewService)

var _ v1.ArcadeServer = (*Service)(nil)

// Service is a service.
type Service struct {
	logger log.Logger
	uc     *biz.Usecase
}

// NewService new a service.
func NewService(uc *biz.Usecase, logger log.Logger) *Service {
	log.Infof("start server:%q version:%+v", conf.Name, conf.Version)
	log.Infof("GameID=%d ArenaID=%d ServerID=%s", conf.GameID, conf.ArenaID, conf.ServerID)
	return &Service{uc: uc, logger: logger}
}

func (s *Service) Login(ctx context.Context, in *v1.LoginReq) (*v1.LoginRsp, error) {
	return s.uc.Login(ctx, in)
}

func (s *Service) Logout(ctx context.Context, in *v1.LogoutReq) (*v1.LogoutRsp, error) {
	return s.uc.Logout(ctx, in)
}

func (s *Service) Scene(ctx context.Context, in *v1.SceneReq) (*v1.SceneRsp, error) {
	return s.uc.Scene(ctx, in)
}

func (s *Service) GameCommand(ctx context.Context, in *v1.GameCommandReq) (*v1.GameCommandRsp, error) {
	return s.uc.GameCommand(ctx, in)
}

// OnSessionOpen 连接建立回调
func (s *Service) OnSessionOpen(sess *ws.Session) {
	log.Infof("OnOpenFunc: %q", sess.ID())
}

// OnSessionClose 连接关闭回调
func (s *Service) OnSessionClose(sess *ws.Session) {
	log.Infof("OnCloseFunc: %q", sess.ID())
	s.uc.OnSessionClose(sess.ID())
}
