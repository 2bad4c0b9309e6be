package v1

// 请求命令字
const (
	CmdLogin       = "login"
	CmdLogout      = "logout"
	CmdScene       = "scene"
	CmdGameCommand = "game.command"
)

// 推送命令字
const (
	PushAreaChanged = "area.changed"
	PushPlayerQuit  = "player.quit"
)

// CommandType 区域游戏命令类型
type CommandType string

const (
	CommandJoinGame  CommandType = "JoinGame"
	CommandStartGame CommandType = "StartGame"
	CommandGameMove  CommandType = "GameMove"
	CommandLeaveGame CommandType = "LeaveGame"
)

type LoginReq struct {
	Name string `json:"name"`
}

type LoginRsp struct {
	PlayerID string        `json:"playerID"`
	AreaID   int32         `json:"areaID"`
	Scene    *AreaSnapshot `json:"scene"`
}

type LogoutReq struct{}

type LogoutRsp struct{}

type SceneReq struct{}

type SceneRsp struct {
	Scene *AreaSnapshot `json:"scene"`
}

// GameCommandReq 区域命令请求. JoinGame 不携带 GameID,
// 其余命令必须携带当前会话的 GameID.
type GameCommandReq struct {
	Type   CommandType `json:"type"`
	GameID string      `json:"gameID,omitempty"`
	Move   *Move       `json:"move,omitempty"`
}

type GameCommandRsp struct {
	GameID string `json:"gameID"`
}

// PlayerQuitPush 玩家离开区域推送
type PlayerQuitPush struct {
	PlayerID string `json:"playerID"`
	Code     int32  `json:"code"`
	Msg      string `json:"msg"`
}
