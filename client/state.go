package client

import (
	"food-ordering-api/config"
	"food-ordering-api/kv"

	"github.com/redis/go-redis/v9"
)

// OpenState opens the store the cart and session persist into. With
// REDIS_ADDR configured the state is shared across a user's devices;
// otherwise it lives in a local JSON file, like browser localStorage.
func OpenState(cfg *config.Config) (kv.Store, error) {
	if cfg.RedisAddr != "" {
		return kv.NewRedis(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "foodapp"), nil
	}
	return kv.OpenFile(cfg.StatePath)
}
