package cache

import (
	"encoding/json"

	"lavoir_back_end/internal/models"
)

// GetUserFromCache récupère le profil d'un utilisateur depuis Redis.
func GetUserFromCache(userID string) *models.UserDto {
	if RedisClient == nil {
		return nil
	}
	data, err := RedisClient.Get(ctx, "user:"+userID).Result()
	if err != nil {
		return nil
	}
	var dto models.UserDto
	if json.Unmarshal([]byte(data), &dto) != nil {
		return nil
	}
	return &dto
}

// SetUserInCache met le profil en cache, best-effort.
func SetUserInCache(dto models.UserDto) {
	if RedisClient == nil {
		return
	}
	data, err := json.Marshal(dto)
	if err != nil {
		return
	}
	RedisClient.Set(ctx, "user:"+dto.ID, data, UserCacheTTL)
}

// InvalidateUser purge le profil après une mise à jour.
func InvalidateUser(userID string) {
	if RedisClient == nil {
		return
	}
	RedisClient.Del(ctx, "user:"+userID)
}
