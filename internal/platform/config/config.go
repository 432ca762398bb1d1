// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// デフォルト値。いずれも対応する環境変数で上書きできます。
const (
	DefaultPort            = "8002"
	DefaultTimezone        = "America/New_York"
	DefaultUploadRateLimit = 60 // 1分あたりのアップロード上限
)

// defaultAllowedOrigins はCORSで許可するデフォルトのオリジンです。
var defaultAllowedOrigins = []string{"http://localhost:3000"}

// Config はアプリケーション全体の設定を保持します。
// 起動時に一度だけ構築され、以降は読み取り専用です。
type Config struct {
	// Port はHTTPサーバーの待ち受けポートです。
	Port string
	// TimezoneName は表示タイムゾーンのIANA名です。
	TimezoneName string
	// DisplayTimezone は表示タイムゾーンです。壁時計変換に使われます。
	DisplayTimezone *time.Location
	// PriceSource は価格カラムファミリー名です（例: "BLKVOL.ASK.US-BLKVOL.BID.US · USI"）。
	PriceSource string
	// AllowedOrigins はCORSで許可するオリジンのリストです。
	AllowedOrigins []string
	// UploadRateLimit は1分あたりのアップロードリクエスト上限です。
	UploadRateLimit int
}

// Load は.envとシステム環境変数から設定を読み込みます。
// .envが存在しない場合はシステム環境変数のみを使います。
func Load() (*Config, error) {
	// .envが無くても失敗にしない（純粋な環境変数運用を許可）
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", DefaultPort),
		TimezoneName:    getEnv("CHART_TZ", DefaultTimezone),
		PriceSource:     os.Getenv("PRICE_SOURCE"),
		AllowedOrigins:  defaultAllowedOrigins,
		UploadRateLimit: DefaultUploadRateLimit,
	}

	loc, err := time.LoadLocation(cfg.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("invalid CHART_TZ %q: %w", cfg.TimezoneName, err)
	}
	cfg.DisplayTimezone = loc

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.AllowedOrigins = make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, p)
			}
		}
	}

	if limit := os.Getenv("UPLOAD_RATE_LIMIT"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid UPLOAD_RATE_LIMIT %q", limit)
		}
		cfg.UploadRateLimit = n
	}

	return cfg, nil
}

// getEnv は環境変数を読み、空の場合はフォールバック値を返します。
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
