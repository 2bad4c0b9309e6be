package conf

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/yola1107/kratos/v2/config"
	"github.com/yola1107/kratos/v2/config/file"
	"github.com/yola1107/kratos/v2/library/event"
	ext "github.com/yola1107/kratos/v2/library/xgo"
	"github.com/yola1107/kratos/v2/log"
)

const Name = "arcade"
const Version = "v0.0.1"
const GameID = 201

var ArenaID = 1   // 场ID
var ServerID = "" // 房间ID

func init() {
	flag.IntVar(&ArenaID, "aid", 1, "specify the arena ID.")
	flag.StringVar(&ServerID, "sid", os.Getenv("HOSTNAME"), "specify the server ID.")
}

// Bootstrap 启动配置
type Bootstrap struct {
	Server *Server `json:"server"`
	Data   *Data   `json:"data"`
	Room   *Room   `json:"room"`
}

type Server struct {
	Websocket *Server_Websocket `json:"websocket"`
}

type Server_Websocket struct {
	Network    string `json:"network"`
	Addr       string `json:"addr"`
	Path       string `json:"path"`
	TimeoutSec int64  `json:"timeoutSec"`
}

type Data struct {
	Redis *Data_Redis `json:"redis"`
}

type Data_Redis struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	Db       int32  `json:"db"`
}

type Room struct {
	Area     *Room_Area     `json:"area"`
	Game     *Room_Game     `json:"game"`
	LogCache *Room_LogCache `json:"logCache"`
}

// Room_Area 区域布局
type Room_Area struct {
	AreaNum  int32 `json:"areaNum"`  // 区域数量
	Capacity int32 `json:"capacity"` // 单区域最大人数
}

// Room_Game 单局游戏参数
type Room_Game struct {
	MaxPlayer          int32 `json:"maxPlayer"`          // 单局最大参与人数
	MinPlayer          int32 `json:"minPlayer"`          // 可开局最少人数
	Difficulty         int32 `json:"difficulty"`         // 难度 1~3
	CustomerSeats      int32 `json:"customerSeats"`      // 顾客位数量
	SpawnIntervalSec   int64 `json:"spawnIntervalSec"`   // 顾客补位间隔
	CustomerTimeoutSec int32 `json:"customerTimeoutSec"` // 顾客等待时长
	HistoryLimit       int32 `json:"historyLimit"`       // 历史记录保留条数
}

type Room_LogCache struct {
	Open bool `json:"open"`
}

// Validate 基本合法性校验
func (bc *Bootstrap) Validate() error {
	if bc.Server == nil || bc.Server.Websocket == nil {
		return fmt.Errorf("server.websocket missing")
	}
	if bc.Data == nil || bc.Data.Redis == nil {
		return fmt.Errorf("data.redis missing")
	}
	r := bc.Room
	if r == nil || r.Area == nil || r.Game == nil || r.LogCache == nil {
		return fmt.Errorf("room config missing")
	}
	if r.Area.AreaNum <= 0 || r.Area.Capacity <= 0 {
		return fmt.Errorf("room.area invalid: %+v", r.Area)
	}
	g := r.Game
	if g.MaxPlayer <= 0 || g.MinPlayer <= 0 || g.MinPlayer > g.MaxPlayer {
		return fmt.Errorf("room.game player limit invalid: %+v", g)
	}
	if g.Difficulty < 1 || g.Difficulty > 3 {
		return fmt.Errorf("room.game difficulty invalid: %d", g.Difficulty)
	}
	if g.CustomerSeats <= 0 || g.SpawnIntervalSec <= 0 || g.CustomerTimeoutSec <= 0 {
		return fmt.Errorf("room.game customer config invalid: %+v", g)
	}
	return nil
}

// LoadConfig 加载配置
func LoadConfig(flagconf string) (config.Config, *Bootstrap) {
	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(fmt.Errorf("bootstrap config invalid: %v", err))
	}
	if err := bc.Validate(); err != nil {
		panic(fmt.Errorf("bootstrap config invalid: %v", err))
	}
	return c, &bc
}

// WatchConfig 监听配置变更并推送事件
func WatchConfig(c config.Config, bc *Bootstrap) error {
	bus := event.NewEventBus()

	for key, ptr := range map[string]any{
		"room.game":     bc.Room.Game,
		"room.logCache": bc.Room.LogCache,
	} {
		if err := c.Watch(key, observer(key, ptr, bus)); err != nil {
			return fmt.Errorf("watch %q failed: %w", key, err)
		}
	}
	return nil
}

func observer(key string, target any, bus *event.Bus) func(string, config.Value) {
	return func(_ string, val config.Value) {
		typ := reflect.TypeOf(target)
		if typ.Kind() != reflect.Pointer {
			log.Errorf("[config] %q target must be a pointer", key)
			return
		}

		newVal := reflect.New(typ.Elem()).Interface()
		if err := val.Scan(newVal); err != nil {
			log.Errorf("[config] scan failed: key=%q, err=%v", key, err)
			return
		}

		_, diff, err := ext.DiffLog(target, newVal)
		if err != nil {
			log.Errorf("[config] diff failed: key=%q, err=%v", key, err)
			return
		}
		if len(diff) > 0 {
			log.Warnf("[config] [%q] updated:\n%s", key, diff)
			// 刷新配置 深拷贝
			if err := ext.DeepCopy(target, newVal); err != nil {
				log.Errorf("[config] update failed: key=%q, err=%v", key, err)
				return
			}
			bus.Publish(key, newVal)
		}
	}
}
