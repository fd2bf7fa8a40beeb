// File: internal/service/users.go
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"user-records/internal/cache"
	"user-records/internal/database"
	"user-records/internal/model"
	"user-records/internal/store"

	"github.com/redis/go-redis/v9"
)

// UsersListKey 是使用者清單在快取中的 key 前綴，實際 key 會帶上世代號碼
// UsersGenKey 是清單世代計數器，每次失效時遞增
const (
	UsersListKey = "users:list"
	UsersGenKey  = "users:gen"
)

var (
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
	listUsers     = store.ListUsers
)

// ListResult 描述一次清單讀取的來源，以及快取失敗時的原因
type ListResult struct {
	Users     []model.User
	FromCache bool
	CacheErr  error
}

func listKey(gen int64) string {
	return fmt.Sprintf("%s:%d", UsersListKey, gen)
}

// ListUsers reads the full user list cache-aside. A cache miss or cache
// fault falls through to the store; only a store fault is returned as err.
// Cache faults are reported in ListResult.CacheErr for the caller to log.
//
// The generation is read before the store query and the fill is written
// under that generation's key, so a snapshot taken before an invalidation
// can never be served after it.
func ListUsers(ctx context.Context, db database.DB, c cache.Cache, ttl time.Duration) (ListResult, error) {
	var res ListResult

	gen, err := c.Get(ctx, UsersGenKey).Int64()
	cacheable := true
	switch {
	case err == nil:
	case errors.Is(err, redis.Nil):
		gen = 0
	default:
		// 讀不到世代就不碰清單快取
		res.CacheErr = fmt.Errorf("read users generation: %w", err)
		cacheable = false
	}

	if cacheable {
		raw, err := c.Get(ctx, listKey(gen)).Bytes()
		switch {
		case err == nil:
			var users []model.User
			if uerr := jsonUnmarshal(raw, &users); uerr == nil && users != nil {
				return ListResult{Users: users, FromCache: true}, nil
			} else if uerr != nil {
				res.CacheErr = fmt.Errorf("decode cached users: %w", uerr)
			}
		case !errors.Is(err, redis.Nil):
			res.CacheErr = fmt.Errorf("read cached users: %w", err)
		}
	}

	users, err := listUsers(ctx, db)
	if err != nil {
		return ListResult{}, err
	}
	res.Users = users
	if !cacheable {
		return res, nil
	}

	data, err := jsonMarshal(users)
	if err != nil {
		res.CacheErr = errors.Join(res.CacheErr, fmt.Errorf("encode users: %w", err))
		return res, nil
	}
	if err := c.Set(ctx, listKey(gen), data, ttl).Err(); err != nil {
		res.CacheErr = errors.Join(res.CacheErr, fmt.Errorf("write cached users: %w", err))
	}
	return res, nil
}

// InvalidateUsers 遞增清單世代並刪除上一代的快取，於每次新增、更新、刪除成功後呼叫
// 進行中的讀取即使之後回填，也只會寫到舊世代的 key
func InvalidateUsers(ctx context.Context, c cache.Cache) error {
	gen, err := c.Incr(ctx, UsersGenKey).Result()
	if err != nil {
		return fmt.Errorf("bump users generation: %w", err)
	}
	if err := c.Del(ctx, listKey(gen-1)).Err(); err != nil {
		return fmt.Errorf("invalidate cached users: %w", err)
	}
	return nil
}
