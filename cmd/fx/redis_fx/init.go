package redis_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"formloom/internal/cache"
	"formloom/internal/infra"
)

var Module = fx.Provide(
	provideRedis, provideSurveyCache)

func provideRedis() *redis.Client {
	return infra.InitRedis()
}

func provideSurveyCache(client *redis.Client) cache.SurveyCache {
	return cache.NewSurveyCache(client)
}
