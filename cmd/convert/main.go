// convert はCSVファイルを1回だけパイプラインに通し、結果のエンベロープJSONを
// 標準出力へ書き出すオフライン変換ツールです。
//
// 使い方: convert <csvファイル> [current_open_time] [prev_close_time]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/adapters/csvtable"
	"chart_backend/internal/feature/chartdata/usecase"
	"chart_backend/internal/platform/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: convert <csv file> [current_open_time HH:MM] [prev_close_time HH:MM]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read %s: %v", os.Args[1], err)
	}

	params := usecase.GapParams{}
	if len(os.Args) > 2 {
		params.CurrentOpenTime = os.Args[2]
	}
	if len(os.Args) > 3 {
		params.PrevCloseTime = os.Args[3]
	}

	mapping := usecase.NewColumnMapping(cfg.PriceSource)
	uc := usecase.NewChartUsecase(csvtable.NewReader(), cfg.DisplayTimezone, mapping)

	result, err := uc.ProcessCSV(context.Background(), content, params)
	if err != nil {
		log.Errorf("processing failed: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to encode result: %v", err)
	}
	fmt.Println(string(out))

	if !result.Success {
		os.Exit(1)
	}
}
