package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"ladder_zone/internal/common"
	"ladder_zone/internal/platform/judge"

	"github.com/redis/go-redis/v9"
)

// JudgeService answers "does the judge site show an Accepted verdict for
// this problem and session". Results are cached briefly per problem and
// session to keep repeat checks off the judge site; the cache is optional
// and every cache failure degrades to a live fetch.
type JudgeService struct {
	client   *judge.Client
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewJudgeService(client *judge.Client, rdb *redis.Client, cacheTTL time.Duration) *JudgeService {
	return &JudgeService{client: client, rdb: rdb, cacheTTL: cacheTTL}
}

func (s *JudgeService) CheckAccepted(ctx context.Context, cookies []judge.Cookie, problemCode string) (*judge.Result, error) {
	if problemCode == "" || len(cookies) == 0 {
		return nil, fmt.Errorf("problemCode and cookies are required: %w", common.ErrBadRequest)
	}

	key := cacheKey(cookies, problemCode)
	if cached := s.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := s.client.CheckAccepted(ctx, cookies, problemCode)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, key, result)
	return result, nil
}

// cacheKey hashes the session cookies so different sessions never share a
// cached verdict and cookie values never appear in Redis.
func cacheKey(cookies []judge.Cookie, problemCode string) string {
	h := sha256.New()
	for _, c := range cookies {
		h.Write([]byte(c.Name))
		h.Write([]byte{0})
		h.Write([]byte(c.Value))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("judge:accepted:%s:%s", problemCode, hex.EncodeToString(h.Sum(nil)[:16]))
}

func (s *JudgeService) fromCache(ctx context.Context, key string) *judge.Result {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("WARN: judge cache read failed: %v", err)
		}
		return nil
	}
	var result judge.Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Printf("WARN: judge cache entry malformed, ignoring: %v", err)
		return nil
	}
	return &result
}

func (s *JudgeService) toCache(ctx context.Context, key string, result *judge.Result) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		log.Printf("WARN: judge cache write failed: %v", err)
	}
}
