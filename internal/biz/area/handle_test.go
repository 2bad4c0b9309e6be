package area

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/biz/game"
	"github.com/yola1107/arcade/internal/biz/pizza"
	"github.com/yola1107/arcade/internal/biz/player"
	"github.com/yola1107/arcade/internal/conf"
	"github.com/yola1107/arcade/pkg/codes"
)

// stubRepo 记录落库调用, 引擎用真实披萨引擎
type stubRepo struct {
	rc    *conf.Room
	saved []*v1.GameResult
}

func (r *stubRepo) GetRoomConfig() *conf.Room { return r.rc }
func (r *stubRepo) NewEngine() game.Engine    { return pizza.NewGame(r.rc.Game) }
func (r *stubRepo) SaveResult(_ context.Context, _ int32, res *v1.GameResult) {
	r.saved = append(r.saved, res)
}
func (r *stubRepo) LogoutGame(_ *player.Player, _ int32, _ string) {}

// recorder 记录推送过的命令
type recorder struct {
	id string

	mu   sync.Mutex
	cmds []string
}

func (s *recorder) ID() string { return s.id }

func (s *recorder) Push(cmd string, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds = append(s.cmds, cmd)
	return nil
}

func (s *recorder) count(cmd string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.cmds {
		if c == cmd {
			n++
		}
	}
	return n
}

func testRoom() *conf.Room {
	return &conf.Room{
		Area: &conf.Room_Area{AreaNum: 1, Capacity: 4},
		Game: &conf.Room_Game{
			MaxPlayer:          1,
			MinPlayer:          1,
			Difficulty:         1,
			CustomerSeats:      3,
			SpawnIntervalSec:   60, // 测试期间不触发补位
			CustomerTimeoutSec: 30,
			HistoryLimit:       10,
		},
		LogCache: &conf.Room_LogCache{Open: false},
	}
}

func newTestArea(t *testing.T) (*Area, *stubRepo, *player.Player, *recorder) {
	t.Helper()
	repo := &stubRepo{rc: testRoom()}
	a := NewArea(1, repo.rc, repo)
	require.NoError(t, a.Start())
	t.Cleanup(a.Close)

	p := player.NewPlayer("p1", "tester")
	sess := &recorder{id: "sess-1"}
	p.SetSession(sess)
	require.True(t, a.ThrowInto(p))
	return a, repo, p, sess
}

func join(t *testing.T, a *Area, p *player.Player) string {
	t.Helper()
	rsp, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandJoinGame})
	require.NoError(t, err)
	require.NotEmpty(t, rsp.GameID)
	return rsp.GameID
}

func TestJoinCreatesSession(t *testing.T) {
	a, _, p, sess := newTestArea(t)
	before := sess.count(v1.PushAreaChanged)

	gameID := join(t, a, p)
	require.NotNil(t, a.GetEngine())
	assert.Equal(t, gameID, a.GetEngine().ID())
	assert.Equal(t, game.StWaitingToStart, a.GetEngine().Status())
	// 成功命令恰好广播一次
	assert.Equal(t, before+1, sess.count(v1.PushAreaChanged))

	// 重复加入: 报错且不广播
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandJoinGame})
	assert.True(t, errors.Is(err, codes.ErrAlreadyInGame))
	assert.Equal(t, before+1, sess.count(v1.PushAreaChanged))
}

func TestCommandWithoutSession(t *testing.T) {
	a, _, p, sess := newTestArea(t)
	before := sess.count(v1.PushAreaChanged)

	for _, typ := range []v1.CommandType{v1.CommandStartGame, v1.CommandGameMove, v1.CommandLeaveGame} {
		_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: typ, GameID: "whatever"})
		assert.True(t, errors.Is(err, codes.ErrGameNotInProgress), "type=%s", typ)
	}
	assert.Equal(t, before, sess.count(v1.PushAreaChanged))
}

func TestGameIDMismatch(t *testing.T) {
	a, _, p, sess := newTestArea(t)
	join(t, a, p)
	before := sess.count(v1.PushAreaChanged)

	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: "bogus"})
	assert.True(t, errors.Is(err, codes.ErrGameIDMismatch))
	assert.Equal(t, before, sess.count(v1.PushAreaChanged))
}

func TestInvalidCommandType(t *testing.T) {
	a, _, p, _ := newTestArea(t)

	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: "Dance"})
	assert.True(t, errors.Is(err, codes.ErrInvalidCommand))

	_, err = a.OnGameCommand(p, nil)
	assert.True(t, errors.Is(err, codes.ErrInvalidCommand))
}

func TestStartGame(t *testing.T) {
	a, _, p, sess := newTestArea(t)
	gameID := join(t, a, p)
	before := sess.count(v1.PushAreaChanged)

	rsp, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: gameID})
	require.NoError(t, err)
	assert.Equal(t, gameID, rsp.GameID)
	assert.Equal(t, game.StInProgress, a.GetEngine().Status())
	assert.Equal(t, before+1, sess.count(v1.PushAreaChanged))

	// 重复开局
	_, err = a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: gameID})
	assert.True(t, errors.Is(err, codes.ErrGameNotStartable))
}

func TestGameMove(t *testing.T) {
	a, _, p, sess := newTestArea(t)
	gameID := join(t, a, p)
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: gameID})
	require.NoError(t, err)
	before := sess.count(v1.PushAreaChanged)

	_, err = a.OnGameCommand(p, &v1.GameCommandReq{
		Type:   v1.CommandGameMove,
		GameID: gameID,
		Move:   &v1.Move{GamePiece: v1.PiecePlaceTopping, Topping: &v1.Topping{Kind: "olives"}},
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, sess.count(v1.PushAreaChanged))

	// 非法操作不广播
	_, err = a.OnGameCommand(p, &v1.GameCommandReq{
		Type:   v1.CommandGameMove,
		GameID: gameID,
		Move:   &v1.Move{GamePiece: v1.PieceMoveToCustomer},
	})
	assert.True(t, errors.Is(err, codes.ErrInvalidMove))
	assert.Equal(t, before+1, sess.count(v1.PushAreaChanged))
}

// 按第一位顾客的订单走完一次出餐, 得 1 分
func serveOnce(t *testing.T, a *Area, p *player.Player, gameID string) {
	t.Helper()
	eng, ok := a.GetEngine().(*pizza.Game)
	require.True(t, ok)

	for _, topping := range eng.Snapshot().CurrentCustomers[0].Order.Pizzas[0].Toppings {
		_, err := a.OnGameCommand(p, &v1.GameCommandReq{
			Type:   v1.CommandGameMove,
			GameID: gameID,
			Move:   &v1.Move{GamePiece: v1.PiecePlaceTopping, Topping: &v1.Topping{Kind: topping.Kind}},
		})
		require.NoError(t, err)
	}
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{
		Type: v1.CommandGameMove, GameID: gameID,
		Move: &v1.Move{GamePiece: v1.PieceMoveToOven},
	})
	require.NoError(t, err)
	_, err = a.OnGameCommand(p, &v1.GameCommandReq{
		Type: v1.CommandGameMove, GameID: gameID,
		Move: &v1.Move{GamePiece: v1.PieceMoveToCustomer},
	})
	require.NoError(t, err)
}

func TestLeaveDuringInProgress(t *testing.T) {
	a, repo, p, sess := newTestArea(t)
	gameID := join(t, a, p)
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: gameID})
	require.NoError(t, err)
	serveOnce(t, a, p, gameID)
	before := sess.count(v1.PushAreaChanged)

	_, err = a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandLeaveGame, GameID: gameID})
	require.NoError(t, err)

	// 进行中退出直接终局
	assert.Equal(t, game.StOver, a.GetEngine().Status())
	assert.Equal(t, before+1, sess.count(v1.PushAreaChanged))

	// 历史与落库各一条, 结算包含退出者的得分
	require.Len(t, a.History(), 1)
	assert.Equal(t, gameID, a.History()[0].GameID)
	assert.Equal(t, map[string]int32{"p1": 1}, a.History()[0].Scores)
	require.Len(t, repo.saved, 1)
	assert.Equal(t, map[string]int32{"p1": 1}, repo.saved[0].Scores)

	// 终局后命令拒绝
	_, err = a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandGameMove, GameID: gameID})
	assert.True(t, errors.Is(err, codes.ErrGameNotInProgress))
}

func TestLeaveBeforeStart(t *testing.T) {
	a, repo, p, _ := newTestArea(t)
	first := join(t, a, p)

	// 未开局退出只回到等人状态, 会话不终结
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandLeaveGame, GameID: first})
	require.NoError(t, err)
	assert.Equal(t, game.StWaitingForPlayers, a.GetEngine().Status())
	assert.Empty(t, repo.saved)

	// 再次加入仍是同一个会话
	assert.Equal(t, first, join(t, a, p))
}

func TestJoinAfterOverCreatesNew(t *testing.T) {
	a, _, p, _ := newTestArea(t)
	first := join(t, a, p)
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: first})
	require.NoError(t, err)
	_, err = a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandLeaveGame, GameID: first})
	require.NoError(t, err)
	require.True(t, a.GetEngine().Status().Terminal())

	second := join(t, a, p)
	assert.NotEqual(t, first, second)
	assert.Equal(t, game.StWaitingToStart, a.GetEngine().Status())
}

func TestHistoryLimit(t *testing.T) {
	a, repo, p, _ := newTestArea(t)
	repo.rc.Game.HistoryLimit = 2

	ids := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		id := join(t, a, p)
		ids = append(ids, id)
		_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: id})
		require.NoError(t, err)
		_, err = a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandLeaveGame, GameID: id})
		require.NoError(t, err)
	}

	require.Len(t, a.History(), 2)
	assert.Equal(t, ids[1], a.History()[0].GameID)
	assert.Equal(t, ids[2], a.History()[1].GameID)
	assert.Len(t, repo.saved, 3)
}

func TestThrowOffLeavesGame(t *testing.T) {
	a, repo, p, sess := newTestArea(t)
	gameID := join(t, a, p)
	_, err := a.OnGameCommand(p, &v1.GameCommandReq{Type: v1.CommandStartGame, GameID: gameID})
	require.NoError(t, err)

	require.True(t, a.ThrowOff(p))

	// 离开区域会替玩家退出会话并终局, 结算包含该玩家
	require.Len(t, repo.saved, 1)
	assert.Equal(t, map[string]int32{"p1": 0}, repo.saved[0].Scores)
	assert.True(t, a.GetEngine().Status().Terminal())
	assert.True(t, a.Empty())
	assert.EqualValues(t, -1, p.GetAreaID())
	assert.Equal(t, 1, sess.count(v1.PushPlayerQuit))
}

func TestBuildSnapshot(t *testing.T) {
	a, _, p, _ := newTestArea(t)
	gameID := join(t, a, p)

	snap := a.BuildSnapshot()
	require.Len(t, snap.Occupants, 1)
	assert.Equal(t, "p1", snap.Occupants[0].PlayerID)
	require.NotNil(t, snap.Game)
	assert.Equal(t, gameID, snap.Game.GameID)
	assert.Equal(t, []string{"p1"}, snap.Game.Players)
	assert.Equal(t, v1.StatusWaitingToStart, snap.Game.State.Status)
	assert.Empty(t, snap.History)
}
