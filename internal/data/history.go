package data

import (
	"context"
	"encoding/json"
	"fmt"

	v1 "github.com/yola1107/arcade/api/arcade/v1"
)

const historyKeepMax = 200

func historyKey(areaID int32) string {
	return fmt.Sprintf("arcade:area:%d:history", areaID)
}

// SaveResult 对局结果追加到区域历史列表
func (r *dataRepo) SaveResult(ctx context.Context, areaID int32, result *v1.GameResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	key := historyKey(areaID)
	pipe := r.data.redis.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, historyKeepMax-1)
	if _, err = pipe.Exec(ctx); err != nil {
		return err
	}
	return nil
}

// LoadHistory 读取区域历史, 最新的在前
func (r *dataRepo) LoadHistory(ctx context.Context, areaID int32, limit int64) ([]*v1.GameResult, error) {
	if limit <= 0 {
		limit = historyKeepMax
	}
	values, err := r.data.redis.LRange(ctx, historyKey(areaID), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*v1.GameResult, 0, len(values))
	for _, v := range values {
		gr := &v1.GameResult{}
		if err = json.Unmarshal([]byte(v), gr); err != nil {
			r.log.Warnf("bad history record. area=%d err=%v", areaID, err)
			continue
		}
		results = append(results, gr)
	}
	return results, nil
}
