package area

import (
	"fmt"

	"github.com/yola1107/kratos/v2/library/log/file"
	"github.com/yola1107/kratos/v2/library/xgo"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/conf"
)

const (
	LogDirPath = "./logs/log_cache/%s/area_%d.log"
)

// Log 区域日志, 每个区域一个文件
type Log struct {
	c      *conf.Room_LogCache
	areaID int32
	logger *file.Log
}

func NewAreaLog(areaID int32, c *conf.Room_LogCache) *Log {
	return &Log{
		c:      c,
		areaID: areaID,
		logger: file.NewFileLog(fmt.Sprintf(LogDirPath, conf.Name, areaID)),
	}
}

func (l *Log) Close() error {
	return l.logger.Sync()
}

func (l *Log) write(msg string, args ...interface{}) {
	if !l.c.Open {
		return
	}
	l.logger.WriteLog(msg, args...)
}

func (l *Log) userEnter(p *player.Player, sitCnt int16) {
	l.write("[进入区域] 玩家:%+v 区域人数(%+v)", p.Desc(), sitCnt)
}

func (l *Log) userExit(p *player.Player, sitCnt int16) {
	l.write("[离开区域] 玩家:%+v 区域人数(%+v)", p.Desc(), sitCnt)
}

func (l *Log) gameCreated(gameID string) {
	l.write("[创建会话] game=%s", gameID)
}

func (l *Log) gameJoin(p *player.Player, gameID string) {
	l.write("[加入会话] 玩家:%+v game=%s", p.Desc(), gameID)
}

func (l *Log) gameStart(p *player.Player, gameID string) {
	l.write("[开始游戏] 玩家:%+v game=%s", p.Desc(), gameID)
}

func (l *Log) gameMove(p *player.Player, mv *v1.Move) {
	l.write("[玩家操作] 玩家:%+v move=%s", p.Desc(), xgo.ToJSON(mv))
}

func (l *Log) gameLeave(p *player.Player, gameID string) {
	l.write("[退出会话] 玩家:%+v game=%s", p.Desc(), gameID)
}

func (l *Log) gameOver(r *v1.GameResult) {
	l.write("[会话结束] game=%s scores=%s", r.GameID, xgo.ToJSON(r.Scores))
}

func (l *Log) badCommand(p *player.Player, typ string) {
	l.write("[非法命令] 玩家:%+v type=%q", p.Desc(), typ)
}
