package area

import (
	"context"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/game"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/conf"
)

// Repo 抽象接口
type Repo interface {
	GetRoomConfig() *conf.Room
	NewEngine() game.Engine
	SaveResult(ctx context.Context, areaID int32, r *v1.GameResult)
	LogoutGame(p *player.Player, code int32, msg string)
}
