// Package router はアプリケーションのHTTPルーティングを構成します。
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	chartdatahandler "chart_backend/internal/feature/chartdata/transport/handler"
	sampledatahandler "chart_backend/internal/feature/sampledata/transport/handler"
	"chart_backend/internal/platform/config"
	platformhandler "chart_backend/internal/platform/http/handler"
	"chart_backend/internal/shared/ratelimiter"
)

// NewRouter はすべてのエンドポイントを登録したginルーターを生成します。
func NewRouter(cfg *config.Config, upload *chartdatahandler.UploadHandler,
	sample *sampledatahandler.SampleHandler) *gin.Engine {
	r := gin.Default()

	// チャートフロントエンドからのクロスオリジンアクセスを許可
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 導通確認用
	r.GET("/", platformhandler.Root)
	r.GET("/health", platformhandler.Health)

	// チャート動作確認用のサンプルデータ
	r.GET("/sample-data", sample.GetSampleData)

	// アップロードは処理コストが高いのでレート制限をかける
	limiter := ratelimiter.NewLimiter(cfg.UploadRateLimit, time.Minute)
	uploads := r.Group("/")
	uploads.Use(ratelimiter.Middleware(limiter))
	{
		uploads.POST("/upload-csv", upload.UploadCSV)
	}

	return r
}
