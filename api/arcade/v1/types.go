package v1

// 游戏会话状态
const (
	StatusWaitingForPlayers = "WAITING_FOR_PLAYERS"
	StatusWaitingToStart    = "WAITING_TO_START"
	StatusInProgress        = "IN_PROGRESS"
	StatusOver              = "OVER"
)

// GamePiece 移动的目标部件
type GamePiece string

const (
	PiecePlaceTopping   GamePiece = "placeTopping"
	PieceMoveToOven     GamePiece = "moveToOven"
	PieceThrowOut       GamePiece = "throwOut"
	PieceMoveToCustomer GamePiece = "moveToCustomer"
)

// Topping 披萨配料
type Topping struct {
	ID             int32  `json:"id"`
	Kind           string `json:"kind"`
	AppliedOnPizza bool   `json:"appliedOnPizza"`
}

// Pizza 一张披萨
type Pizza struct {
	ID       int32      `json:"id"`
	Toppings []*Topping `json:"toppings"`
	Cooked   bool       `json:"cooked"`
}

// Oven 烤箱, 同一时间最多一张披萨
type Oven struct {
	Pizza *Pizza `json:"pizza,omitempty"`
}

// Order 顾客订单
type Order struct {
	Pizzas     []*Pizza `json:"pizzas"`
	PointValue int32    `json:"pointValue"`
}

// Customer 顾客
type Customer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TimeRemaining int32  `json:"timeRemaining"` // 剩余等待秒数
	Completed     bool   `json:"completed"`
	Order         *Order `json:"order"`
}

// Move 玩家的一次游戏操作
type Move struct {
	GamePiece GamePiece `json:"gamePiece"`
	Topping   *Topping  `json:"topping,omitempty"`
}

// GameState 游戏内部状态快照
type GameState struct {
	Status           string      `json:"status"`
	CurrentScore     int32       `json:"currentScore"`
	Oven             *Oven       `json:"oven"`
	CurrentCustomers []*Customer `json:"currentCustomers"`
	CurrentPizza     *Pizza      `json:"currentPizza,omitempty"`
	Difficulty       int32       `json:"difficulty"`
}

// GameSession 一局游戏会话
type GameSession struct {
	GameID  string           `json:"gameID"`
	Players []string         `json:"players"`
	Scores  map[string]int32 `json:"scores,omitempty"`
	State   *GameState       `json:"state"`
}

// PlayerInfo 区域内玩家信息
type PlayerInfo struct {
	PlayerID string `json:"playerID"`
	Name     string `json:"name"`
}

// GameResult 一局结束后的结果记录
type GameResult struct {
	GameID  string           `json:"gameID"`
	Scores  map[string]int32 `json:"scores"`
	EndedAt int64            `json:"endedAt"`
}

// AreaSnapshot 区域完整快照, 广播给所有区域内玩家
type AreaSnapshot struct {
	AreaID    int32         `json:"areaID"`
	Occupants []*PlayerInfo `json:"occupants"`
	Game      *GameSession  `json:"game,omitempty"`
	History   []*GameResult `json:"history,omitempty"`
}
