package lib

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// GetRedisClient returns the shared client, or nil when REDIS_HOST is not
// configured. Callers treat nil as "cache disabled" and go to the DB.
func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		return nil
	}
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

func CacheGet(key string) (string, bool) {
	rd := GetRedisClient()
	if rd == nil {
		return "", false
	}
	val, err := rd.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return "", false
	} else if err != nil {
		log.Printf("[redis] Error retrieving value for %s: %s\n", key, err.Error())
		return "", false
	}
	return val, true
}

func CacheSet(key string, value string, ttlSeconds int) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(context.Background(), key, value, time.Duration(ttlSeconds)*time.Second).Err(); err != nil {
		log.Printf("[redis] Failed to set value for key %s: %s\n", key, err.Error())
	}
}

func CacheDel(key string) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), key).Err(); err != nil {
		log.Printf("[redis] Failed to delete key %s: %s\n", key, err.Error())
	}
}
