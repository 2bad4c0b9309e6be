package main

import (
	"flag"
	"time"

	"github.com/yola1107/kratos/v2"
	"github.com/yola1107/kratos/v2/library/log/zap"
	zconf "github.com/yola1107/kratos/v2/library/log/zap/conf"
	"github.com/yola1107/kratos/v2/log"

	"github.com/yola1107/arcade/tools/press"
)

const (
	Name = "arcade-client"
)

var (
	flagURL      string
	flagUserNum  int
	flagInterval int
)

func init() {
	flag.StringVar(&flagURL, "url", "ws://127.0.0.1:8801/ws", "server url")
	flag.IntVar(&flagUserNum, "n", 1, "user count")
	flag.IntVar(&flagInterval, "i", 1000, "action interval (ms)")
}

func main() {
	flag.Parse()

	logger := zap.NewLogger(zconf.DefaultConfig(
		zconf.WithAppName(Name),
	))
	log.SetLogger(logger)
	defer logger.Close()

	runner := press.NewRunner(press.Config{
		URL:      flagURL,
		UserNum:  flagUserNum,
		Interval: time.Duration(flagInterval) * time.Millisecond,
	})
	runner.Start()
	defer runner.Stop()

	app := kratos.New(
		kratos.Name(Name),
		kratos.Logger(logger),
	)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
