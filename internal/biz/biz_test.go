package biz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yola1107/kratos/v2/log"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
	"github.com/yola1107/arcade/internal/conf"
)

// blockingRepo 卡住落库调用, 用于验证调用方不等待
type blockingRepo struct {
	started chan struct{}
	release chan struct{}
	saved   chan *v1.GameResult
}

func newBlockingRepo() *blockingRepo {
	return &blockingRepo{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		saved:   make(chan *v1.GameResult, 1),
	}
}

func (r *blockingRepo) SaveResult(_ context.Context, _ int32, gr *v1.GameResult) error {
	r.started <- struct{}{}
	<-r.release
	r.saved <- gr
	return nil
}

func (r *blockingRepo) LoadHistory(context.Context, int32, int64) ([]*v1.GameResult, error) {
	return nil, nil
}

func testRoom() *conf.Room {
	return &conf.Room{
		Area: &conf.Room_Area{AreaNum: 1, Capacity: 2},
		Game: &conf.Room_Game{
			MaxPlayer:          1,
			MinPlayer:          1,
			Difficulty:         1,
			CustomerSeats:      3,
			SpawnIntervalSec:   60,
			CustomerTimeoutSec: 30,
			HistoryLimit:       10,
		},
		LogCache: &conf.Room_LogCache{Open: false},
	}
}

func TestSaveResultNonBlocking(t *testing.T) {
	repo := newBlockingRepo()
	uc, cleanup, err := NewUsecase(repo, log.DefaultLogger, testRoom())
	require.NoError(t, err)
	defer cleanup()

	// 落库卡住时调用也要立即返回
	uc.SaveResult(context.Background(), 1, &v1.GameResult{GameID: "g1"})

	select {
	case <-repo.started:
	case <-time.After(time.Second):
		t.Fatal("save never started")
	}
	close(repo.release)

	select {
	case gr := <-repo.saved:
		assert.Equal(t, "g1", gr.GameID)
	case <-time.After(time.Second):
		t.Fatal("save never finished")
	}
}
