package area

import (
	"github.com/jinzhu/copier"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/player"
)

func (t *Area) SendPacketToClient(p *player.Player, cmd string, msg any) {
	if p == nil {
		return
	}
	session := p.GetSession()
	if session == nil {
		return
	}
	if err := session.Push(cmd, msg); err != nil {
		log.Warnf("send packet to client error: %v", err)
	}
}

func (t *Area) SendPacketToAll(cmd string, msg any) {
	for _, v := range t.seats {
		if v == nil {
			continue
		}
		t.SendPacketToClient(v, cmd, msg)
	}
}

// broadcastAreaChanged 广播区域快照
func (t *Area) broadcastAreaChanged() {
	t.SendPacketToAll(v1.PushAreaChanged, t.BuildSnapshot())
}

// 玩家离开区域推送
func (t *Area) broadcastUserQuitPush(p *player.Player) {
	t.SendPacketToAll(v1.PushPlayerQuit, &v1.PlayerQuitPush{
		PlayerID: p.GetPlayerID(),
	})
}

// BuildSnapshot 构造区域完整快照. 游戏状态为深拷贝,
// 接收方持有的快照与引擎内部状态互不影响.
func (t *Area) BuildSnapshot() *v1.AreaSnapshot {
	snap := &v1.AreaSnapshot{AreaID: t.ID}

	for _, p := range t.seats {
		if p == nil {
			continue
		}
		snap.Occupants = append(snap.Occupants, &v1.PlayerInfo{
			PlayerID: p.GetPlayerID(),
			Name:     p.GetName(),
		})
	}

	if t.engine != nil {
		snap.Game = &v1.GameSession{
			GameID:  t.engine.ID(),
			Players: t.engine.Players(),
			Scores:  t.engine.Scores(),
			State:   t.engine.Snapshot(),
		}
	}

	if len(t.history) > 0 {
		if err := copier.CopyWithOption(&snap.History, &t.history, copier.Option{DeepCopy: true}); err != nil {
			log.Errorf("snapshot copy history failed: %v", err)
		}
	}
	return snap
}

// SendSceneInfo 给单个玩家发送区域快照
func (t *Area) SendSceneInfo(p *player.Player) {
	t.SendPacketToClient(p, v1.PushAreaChanged, t.BuildSnapshot())
}
