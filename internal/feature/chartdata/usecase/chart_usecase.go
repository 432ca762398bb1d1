// Package usecase はchartdataフィーチャーのビジネスロジックを実装します。
// CSVテーブルからチャート表示用のローソク足列を生成するパイプライン
// （カラム射影 → タイムゾーン再投影 → セッション分類 → ギャップ補正 → 結果組み立て）を提供します。
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/domain/entity"
)

// summaryTimeLayout はサマリーの日付範囲に使うローカル表現のレイアウトです。
const summaryTimeLayout = "2006-01-02T15:04:05"

// ErrNoRows は処理後に有効なローソク足が1本も残らなかったことを示します。
var ErrNoRows = errors.New("no valid rows in table")

// TableReader はバイト列をテーブルに変換する取り込みアダプタのインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TableReader interface {
	Parse(content []byte) (*entity.Table, error)
}

// chartUsecase はアップロードされた1ファイルを1回の同期パイプラインで処理します。
// リクエスト間で共有される状態はカラムマッピングとタイムゾーン（いずれも読み取り専用）だけです。
type chartUsecase struct {
	reader      TableReader
	extractor   *columnExtractor
	reprojector *timezoneReprojector
	classifier  *sessionClassifier
	adjuster    *gapAdjuster
}

// NewChartUsecase はchartUsecaseの新しいインスタンスを生成します。
// locは表示タイムゾーン、mappingはソーステーブルの必須カラム構成です。
func NewChartUsecase(reader TableReader, loc *time.Location, mapping ColumnMapping) *chartUsecase {
	return &chartUsecase{
		reader:      reader,
		extractor:   newColumnExtractor(mapping),
		reprojector: newTimezoneReprojector(loc),
		classifier:  newSessionClassifier(),
		adjuster:    newGapAdjuster(),
	}
}

// ProcessCSV はCSVコンテンツをパイプライン全体に通し、結果のエンベロープを返します。
// いずれかの段で失敗した場合は空のデータを持つ失敗エンベロープと元のエラーを返します。
// 部分的に処理された列が返ることはありません。
func (u *chartUsecase) ProcessCSV(ctx context.Context, content []byte, params GapParams) (*entity.ChartResult, error) {
	candles, summary, err := u.run(ctx, content, params)
	if err != nil {
		log.Errorf("Error processing CSV: %v", err)
		return &entity.ChartResult{
			Success: false,
			Error:   err.Error(),
			Data:    []entity.ChartCandle{},
		}, err
	}
	return &entity.ChartResult{
		Success: true,
		Data:    candles,
		Summary: summary,
	}, nil
}

// run はパイプラインの各段を順に実行します。
func (u *chartUsecase) run(_ context.Context, content []byte, params GapParams) ([]entity.ChartCandle, *entity.Summary, error) {
	table, err := u.reader.Parse(content)
	if err != nil {
		return nil, nil, err
	}

	records, err := u.extractor.Extract(table)
	if err != nil {
		return nil, nil, err
	}

	candles := u.reprojector.Reproject(records)
	candles = u.classifier.Classify(candles)
	if len(candles) == 0 {
		return nil, nil, ErrNoRows
	}

	candles = u.adjuster.Adjust(candles, params)

	return u.assemble(candles)
}

// assemble はスクラッチフィールドを落とした公開射影とサマリーを構築します。
func (u *chartUsecase) assemble(candles []entity.Candle) ([]entity.ChartCandle, *entity.Summary, error) {
	out := make([]entity.ChartCandle, 0, len(candles))
	epochs := make([]float64, 0, len(candles))
	regular := 0
	for _, c := range candles {
		out = append(out, entity.ChartCandle{
			Time:           c.DisplayEpoch,
			Open:           c.Open,
			High:           c.High,
			Low:            c.Low,
			Close:          c.Close,
			IsRegularHours: c.IsRegularHours,
		})
		epochs = append(epochs, float64(c.DisplayEpoch))
		if c.IsRegularHours {
			regular++
		}
	}

	minEpoch, err := stats.Min(epochs)
	if err != nil {
		return nil, nil, err
	}
	maxEpoch, err := stats.Max(epochs)
	if err != nil {
		return nil, nil, err
	}

	log.Infof("Formatted %d data points (regular hours: %d, after hours: %d)",
		len(out), regular, len(out)-regular)

	summary := &entity.Summary{
		TotalRows: len(out),
		DateRange: entity.DateRange{
			// 表示用エポックはローカル壁時計を運ぶ擬似UTCなので、UTCとして整形すると
			// ちょうど表示タイムゾーンのローカル表現になる
			Start: time.Unix(int64(minEpoch), 0).UTC().Format(summaryTimeLayout),
			End:   time.Unix(int64(maxEpoch), 0).UTC().Format(summaryTimeLayout),
		},
		Columns: []string{"open", "high", "low", "close"},
	}
	return out, summary, nil
}
