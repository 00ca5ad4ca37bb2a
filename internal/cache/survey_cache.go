package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"formloom/internal/models/response_models"
)

// SurveyCache keeps the respondent-facing survey document hot; the builder
// invalidates on every save and publish toggle.
type SurveyCache interface {
	Get(ctx context.Context, shareToken string) (*response_models.PublicSurveyResponse, error)
	Set(ctx context.Context, shareToken string, survey *response_models.PublicSurveyResponse) error
	Delete(ctx context.Context, shareToken string) error
}

type surveyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSurveyCache(client *redis.Client) SurveyCache {
	return &surveyCache{client: client, ttl: 5 * time.Minute}
}

func cacheKey(shareToken string) string {
	return "public_survey:" + shareToken
}

func (c *surveyCache) Get(ctx context.Context, shareToken string) (*response_models.PublicSurveyResponse, error) {
	if c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, cacheKey(shareToken)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var survey response_models.PublicSurveyResponse
	if err := json.Unmarshal([]byte(data), &survey); err != nil {
		return nil, err
	}
	return &survey, nil
}

func (c *surveyCache) Set(ctx context.Context, shareToken string, survey *response_models.PublicSurveyResponse) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(survey)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(shareToken), data, c.ttl).Err()
}

func (c *surveyCache) Delete(ctx context.Context, shareToken string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKey(shareToken)).Err()
}
