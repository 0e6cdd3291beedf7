package rdx

import (
	"log"

	"pgfinder/globals"

	"github.com/redis/go-redis/v9"
)

// Conn is nil when Redis is not configured; all helpers degrade to no-ops
// so reads fall through to MongoDB.
var Conn *redis.Client

func Init(addr string) {
	if addr == "" {
		log.Println("REDIS_ADDR not set; running without cache")
		return
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis ping failed (%v); running without cache", err)
		Conn = nil
	}
}

func RdxGet(key string) (string, error) {
	if Conn == nil {
		return "", nil
	}
	val, err := Conn.Get(globals.Ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func RdxSet(key, value string) error {
	if Conn == nil {
		return nil
	}
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxDel(key string) (int64, error) {
	if Conn == nil {
		return 0, nil
	}
	return Conn.Del(globals.Ctx, key).Result()
}
