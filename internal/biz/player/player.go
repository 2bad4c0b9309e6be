package player

import (
	"fmt"
	"time"
)

// Pusher 玩家会话的推送出口, 线上为 ws.Session
type Pusher interface {
	ID() string
	Push(cmd string, body any) error
}

// Player 在线玩家
type Player struct {
	id   string
	name string

	areaID    int32
	isOffline bool
	enterAt   time.Time

	session Pusher
}

func NewPlayer(id, name string) *Player {
	return &Player{
		id:      id,
		name:    name,
		areaID:  -1,
		enterAt: time.Now(),
	}
}

func (p *Player) GetPlayerID() string { return p.id }
func (p *Player) GetName() string     { return p.name }

func (p *Player) SetAreaID(id int32) { p.areaID = id }
func (p *Player) GetAreaID() int32   { return p.areaID }

func (p *Player) SetOffline(off bool) { p.isOffline = off }
func (p *Player) IsOffline() bool     { return p.isOffline }

func (p *Player) SetSession(sess Pusher) { p.session = sess }
func (p *Player) GetSession() Pusher     { return p.session }

func (p *Player) GetSessionID() string {
	if p.session == nil {
		return ""
	}
	return p.session.ID()
}

// ExitReset 离开区域时清理绑定
func (p *Player) ExitReset() {
	p.areaID = -1
}

func (p *Player) Desc() string {
	return fmt.Sprintf("(%s %q A:%d off:%v)", p.id, p.name, p.areaID, p.isOffline)
}
