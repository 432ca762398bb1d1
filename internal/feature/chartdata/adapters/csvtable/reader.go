// Package csvtable はCSVバイト列をドメインのTableに変換するアダプタです。
package csvtable

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/domain/entity"
)

// Reader はCSVコンテンツを読み取ってTableを生成します。
type Reader struct{}

// NewReader はReaderの新しいインスタンスを生成します。
func NewReader() *Reader {
	return &Reader{}
}

// Parse はアップロードされたCSVバイト列をTableに変換します。
// ヘッダー行をカラム名として、各行を カラム名 → セル文字列 のマップで保持します。
func (r *Reader) Parse(content []byte) (*entity.Table, error) {
	rows, err := gocsv.CSVToMaps(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	log.Infof("CSV loaded with %d rows and %d columns", len(rows), cols)

	return &entity.Table{Rows: rows}, nil
}
