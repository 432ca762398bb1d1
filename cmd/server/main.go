package main

import (
	log "github.com/sirupsen/logrus"

	"chart_backend/internal/app/router"
	"chart_backend/internal/feature/chartdata/adapters/csvtable"
	chartdatahandler "chart_backend/internal/feature/chartdata/transport/handler"
	chartdatausecase "chart_backend/internal/feature/chartdata/usecase"
	sampledatahandler "chart_backend/internal/feature/sampledata/transport/handler"
	sampledatausecase "chart_backend/internal/feature/sampledata/usecase"
	"chart_backend/internal/platform/config"
)

func main() {
	// 設定（.env / 環境変数）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.Infof("display timezone: %s", cfg.TimezoneName)

	// Adapter
	reader := csvtable.NewReader()

	// Usecase
	mapping := chartdatausecase.NewColumnMapping(cfg.PriceSource)
	chartUC := chartdatausecase.NewChartUsecase(reader, cfg.DisplayTimezone, mapping)
	sampleUC := sampledatausecase.NewSampleUsecase()

	// Handler
	uploadH := chartdatahandler.NewUploadHandler(chartUC)
	sampleH := sampledatahandler.NewSampleHandler(sampleUC)

	// ルータ生成
	r := router.NewRouter(cfg, uploadH, sampleH)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
