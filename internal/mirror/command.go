package mirror

import (
	"context"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/pkg/codes"
)

// Commander 命令发送通道, 线上为 websocket 客户端
type Commander interface {
	GameCommand(ctx context.Context, in *v1.GameCommandReq) (*v1.GameCommandRsp, error)
}

// Join 请求加入会话.
// 镜像已知会话进行中且自己不在其中时本地直接拒绝.
func (m *Mirror) Join(ctx context.Context) (string, error) {
	if m.IsActive() && !m.IsPlayer() && m.Status() == v1.StatusInProgress {
		return "", codes.ErrGameNotJoinable
	}

	rsp, err := m.cmd.GameCommand(ctx, &v1.GameCommandReq{Type: v1.CommandJoinGame})
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.gameID = rsp.GameID
	m.mu.Unlock()
	return rsp.GameID, nil
}

// Start 请求开局. 镜像状态不是可开局时本地直接拒绝.
func (m *Mirror) Start(ctx context.Context) error {
	gameID := m.GameID()
	if gameID == "" {
		return codes.ErrGameNotInProgress
	}
	if m.Status() != v1.StatusWaitingToStart {
		return codes.ErrGameNotStartable
	}

	_, err := m.cmd.GameCommand(ctx, &v1.GameCommandReq{
		Type:   v1.CommandStartGame,
		GameID: gameID,
	})
	return err
}

// Move 提交一次游戏操作. 会话不在进行中时本地直接拒绝.
func (m *Mirror) Move(ctx context.Context, mv *v1.Move) error {
	gameID := m.GameID()
	if gameID == "" || m.Status() != v1.StatusInProgress {
		return codes.ErrGameNotInProgress
	}

	_, err := m.cmd.GameCommand(ctx, &v1.GameCommandReq{
		Type:   v1.CommandGameMove,
		GameID: gameID,
		Move:   mv,
	})
	return err
}

// Leave 退出会话
func (m *Mirror) Leave(ctx context.Context) error {
	gameID := m.GameID()
	if gameID == "" {
		return codes.ErrGameNotInProgress
	}

	_, err := m.cmd.GameCommand(ctx, &v1.GameCommandReq{
		Type:   v1.CommandLeaveGame,
		GameID: gameID,
	})
	return err
}
