package usecase

import (
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/domain"
	"chart_backend/internal/feature/chartdata/domain/entity"
)

const (
	// DefaultPriceSource はデフォルトの価格カラムファミリー名です。
	DefaultPriceSource = "BLKVOL.ASK.US-BLKVOL.BID.US · USI"
	// TimeColumn は必須の時刻カラム名です。
	TimeColumn = "time"
)

// ColumnMapping はソーステーブル上の必須カラム名を保持します。
// プロセス起動時に一度だけ構成され、リクエスト間で共有される読み取り専用の値です。
type ColumnMapping struct {
	Time  string
	Open  string
	High  string
	Low   string
	Close string
}

// NewColumnMapping は価格カラムファミリー名から必須カラムのマッピングを生成します。
// カラム名は「<ファミリー名>: open」の形式に従います。
func NewColumnMapping(priceSource string) ColumnMapping {
	if priceSource == "" {
		priceSource = DefaultPriceSource
	}
	return ColumnMapping{
		Time:  TimeColumn,
		Open:  fmt.Sprintf("%s: open", priceSource),
		High:  fmt.Sprintf("%s: high", priceSource),
		Low:   fmt.Sprintf("%s: low", priceSource),
		Close: fmt.Sprintf("%s: close", priceSource),
	}
}

// required は検証対象のカラム名を固定順（time, open, high, low, close）で返します。
func (m ColumnMapping) required() []string {
	return []string{m.Time, m.Open, m.High, m.Low, m.Close}
}

// columnExtractor はワイドテーブルから必須5カラムを射影してRawRecordを生成します。
type columnExtractor struct {
	mapping ColumnMapping
}

// newColumnExtractor はcolumnExtractorの新しいインスタンスを生成します。
func newColumnExtractor(mapping ColumnMapping) *columnExtractor {
	return &columnExtractor{mapping: mapping}
}

// validate は必須カラムの存在を確認し、欠けているものをすべて列挙した
// FormatErrorを返します。部分的な取り込みは行いません。
func (e *columnExtractor) validate(t *entity.Table) error {
	var missing []string
	for _, col := range e.mapping.required() {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		log.Errorf("Missing required columns: %v", missing)
		return &domain.FormatError{MissingColumns: missing}
	}
	return nil
}

// Extract はテーブルからRawRecordの列を生成します。
// OHLCの4値がすべて空の行は取り除かれます。
func (e *columnExtractor) Extract(t *entity.Table) ([]entity.RawRecord, error) {
	if err := e.validate(t); err != nil {
		return nil, err
	}

	records := make([]entity.RawRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		epoch, err := parseEpoch(row[e.mapping.Time])
		if err != nil {
			return nil, fmt.Errorf("invalid value in column %q: %w", e.mapping.Time, err)
		}

		rec := entity.RawRecord{Time: epoch}
		for _, pc := range []struct {
			col  string
			dest **float64
		}{
			{e.mapping.Open, &rec.Open},
			{e.mapping.High, &rec.High},
			{e.mapping.Low, &rec.Low},
			{e.mapping.Close, &rec.Close},
		} {
			v, err := e.priceCell(row, pc.col)
			if err != nil {
				return nil, err
			}
			*pc.dest = v
		}

		// OHLCすべてが空の行は除外する
		if rec.Open == nil && rec.High == nil && rec.Low == nil && rec.Close == nil {
			continue
		}
		records = append(records, rec)
	}

	log.Infof("Processed data: %d rows", len(records))
	return records, nil
}

// priceCell は1セルの価格値を解釈します。空セルはnil、
// 宣言済みカラムが行に存在しない場合は0にフォールバックします。
func (e *columnExtractor) priceCell(row map[string]string, col string) (*float64, error) {
	cell, ok := row[col]
	if !ok {
		// validate通過後は到達しないはずだが、欠けたカラムは0として扱う
		log.Warnf("Column %s not found", col)
		zero := 0.0
		return &zero, nil
	}
	if cell == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q in column %q", cell, col)
	}
	return &v, nil
}

// parseEpoch はtimeカラムのセルをUTCエポック秒として解釈します。
func parseEpoch(cell string) (int64, error) {
	if epoch, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return epoch, nil
	}
	// 小数表記のエポック秒も受け付ける（秒未満は切り捨て）
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as epoch seconds", cell)
	}
	return int64(f), nil
}
