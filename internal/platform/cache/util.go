package cache

import (
	"time"
)

// TimeUntilNext3AM は次の午前3時（日本時間）までの期間を返します。
// 図書館カタログの夜間同期に合わせてキャッシュを失効させるためです。
func TimeUntilNext3AM() time.Duration {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	now := time.Now().In(loc)

	// 次の午前3時を計算
	next3am := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, loc)

	// 今日の午前3時が既に過ぎている場合は明日の午前3時を使用
	if now.After(next3am) {
		next3am = next3am.Add(24 * time.Hour)
	}

	return next3am.Sub(now)
}
