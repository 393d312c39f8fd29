package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix        = "user:%d"
	PitchKeyPrefix       = "pitch:%d"
	PitchListKey         = "pitches:anon"
	CategoriesKey        = "pitches:categories"
	PlatformStatsKey     = "stats:platform"
	TokenBlacklistPrefix = "blacklist:%s"
)

const (
	UserTTL          = 5 * time.Minute
	PitchTTL         = 10 * time.Minute
	CategoriesTTL    = 10 * time.Minute
	PlatformStatsTTL = time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PitchKey(pitchID uint) string {
	return fmt.Sprintf(PitchKeyPrefix, pitchID)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePitch(ctx context.Context, pitchID uint) {
	Invalidate(ctx, PitchKey(pitchID))
}

func InvalidatePitchLists(ctx context.Context) {
	Invalidate(ctx, PitchListKey)
	Invalidate(ctx, CategoriesKey)
	Invalidate(ctx, PlatformStatsKey)
}
