// Package press 压测与联调客户端: 模拟若干玩家登录,
// 加入会话并随机操作, 通过镜像观察服务端广播.
package press

import (
	"context"
	"sync"
	"time"

	"github.com/yola1107/kratos/v2/library/work"
	"github.com/yola1107/kratos/v2/log"
)

// Config 压测参数
type Config struct {
	URL      string        // 服务地址
	UserNum  int           // 模拟玩家数
	Interval time.Duration // 行为间隔
}

type Runner struct {
	c      Config
	loop   work.Loop
	timer  work.Scheduler
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	users []*User
}

func NewRunner(c Config) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	loop := work.NewLoop(work.WithSize(100))
	timer := work.NewScheduler(
		work.WithContext(ctx),
		work.WithExecutor(loop),
	)
	return &Runner{
		c:      c,
		loop:   loop,
		timer:  timer,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (r *Runner) Start() {
	if err := r.loop.Start(); err != nil {
		panic(err)
	}

	for i := 0; i < r.c.UserNum; i++ {
		u := NewUser(int64(i+1), r)
		r.mu.Lock()
		r.users = append(r.users, u)
		r.mu.Unlock()
		r.loop.Post(u.Init)
	}

	r.timer.Forever(r.c.Interval, r.tick)
	log.Infof("press runner started. users=%d url=%s", r.c.UserNum, r.c.URL)
}

func (r *Runner) Stop() {
	r.cancel()
	r.timer.Stop()

	r.mu.Lock()
	users := append([]*User(nil), r.users...)
	r.mu.Unlock()
	for _, u := range users {
		u.Release()
	}

	r.loop.Stop()
	log.Infof("press runner stopped")
}

func (r *Runner) tick() {
	r.mu.Lock()
	users := append([]*User(nil), r.users...)
	r.mu.Unlock()
	for _, u := range users {
		u.Step()
	}
}

func (r *Runner) GetContext() context.Context { return r.ctx }
func (r *Runner) GetURL() string              { return r.c.URL }
