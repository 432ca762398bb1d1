package usecase

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart_backend/internal/feature/chartdata/domain"
	"chart_backend/internal/feature/chartdata/domain/entity"
)

func testMapping() ColumnMapping {
	return NewColumnMapping("")
}

func fullRow(epoch int64, o, h, l, c string) map[string]string {
	m := testMapping()
	return map[string]string{
		m.Time:  fmt.Sprintf("%d", epoch),
		m.Open:  o,
		m.High:  h,
		m.Low:   l,
		m.Close: c,
	}
}

// TestNewColumnMapping はカラム名が「<ファミリー名>: <フィールド>」の形式で
// 組み立てられることを検証します。
func TestNewColumnMapping(t *testing.T) {
	m := NewColumnMapping("")
	assert.Equal(t, "time", m.Time)
	assert.Equal(t, "BLKVOL.ASK.US-BLKVOL.BID.US · USI: open", m.Open)
	assert.Equal(t, "BLKVOL.ASK.US-BLKVOL.BID.US · USI: close", m.Close)

	m = NewColumnMapping("MYFEED")
	assert.Equal(t, "MYFEED: high", m.High)
	assert.Equal(t, "MYFEED: low", m.Low)
}

// TestExtract_MissingColumns は欠けている必須カラムがすべて列挙された
// FormatErrorで失敗することを検証します。
func TestExtract_MissingColumns(t *testing.T) {
	m := testMapping()
	e := newColumnExtractor(m)

	// timeとcloseだけを持つテーブル
	table := &entity.Table{Rows: []map[string]string{
		{m.Time: "0", m.Close: "100"},
	}}

	_, err := e.Extract(table)
	require.Error(t, err)

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, []string{m.Open, m.High, m.Low}, formatErr.MissingColumns)
	assert.Contains(t, err.Error(), "missing required columns")
}

// TestExtract_EmptyTable は行が1つもないテーブルがFormatErrorで
// 失敗することを検証します（ヘッダー形状を証明できないため全カラムを列挙）。
func TestExtract_EmptyTable(t *testing.T) {
	m := testMapping()
	e := newColumnExtractor(m)

	_, err := e.Extract(&entity.Table{})

	var formatErr *domain.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Len(t, formatErr.MissingColumns, 5)
	assert.Equal(t, m.Time, formatErr.MissingColumns[0])
}

// TestExtract_Projection は必須5カラムだけが射影されることを検証します。
func TestExtract_Projection(t *testing.T) {
	m := testMapping()
	e := newColumnExtractor(m)

	row := fullRow(1600000000, "100.5", "101", "99.5", "100.75")
	row["unrelated column"] = "garbage"
	table := &entity.Table{Rows: []map[string]string{row}}

	records, err := e.Extract(table)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, int64(1600000000), records[0].Time)
	assert.Equal(t, 100.5, *records[0].Open)
	assert.Equal(t, 101.0, *records[0].High)
	assert.Equal(t, 99.5, *records[0].Low)
	assert.Equal(t, 100.75, *records[0].Close)
}

// TestExtract_NullHandling は空セルがnil、全OHLC空の行が除外されることを検証します。
func TestExtract_NullHandling(t *testing.T) {
	e := newColumnExtractor(testMapping())

	table := &entity.Table{Rows: []map[string]string{
		fullRow(0, "", "", "", ""), // 除外される
		fullRow(900, "100", "", "", ""),
	}}

	records, err := e.Extract(table)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, int64(900), records[0].Time)
	assert.Equal(t, 100.0, *records[0].Open)
	assert.Nil(t, records[0].High)
}

// TestExtract_MissingCellDefaultsToZero は検証通過後に行からカラムが
// 欠けていた場合、その価格が0にフォールバックすることを検証します。
func TestExtract_MissingCellDefaultsToZero(t *testing.T) {
	m := testMapping()
	e := newColumnExtractor(m)

	// 先頭行は完全、2行目はhighカラムのセルを欠く
	second := fullRow(900, "100", "101", "99", "100.5")
	delete(second, m.High)
	table := &entity.Table{Rows: []map[string]string{
		fullRow(0, "100", "101", "99", "100.5"),
		second,
	}}

	records, err := e.Extract(table)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 0.0, *records[1].High)
}

// TestExtract_InvalidValues は数値として解釈できないセルが
// リクエスト全体の失敗になることを検証します。
func TestExtract_InvalidValues(t *testing.T) {
	e := newColumnExtractor(testMapping())

	tests := []struct {
		name string
		row  map[string]string
	}{
		{name: "bad epoch", row: fullRow(0, "100", "101", "99", "100.5")},
		{name: "bad price", row: fullRow(900, "not-a-number", "101", "99", "100.5")},
	}
	tests[0].row[testMapping().Time] = "yesterday"

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(&entity.Table{Rows: []map[string]string{tt.row}})
			assert.Error(t, err)
		})
	}
}

// TestExtract_FloatEpoch は小数表記のエポック秒が切り捨てで受理されることを検証します。
func TestExtract_FloatEpoch(t *testing.T) {
	m := testMapping()
	e := newColumnExtractor(m)

	row := fullRow(0, "100", "101", "99", "100.5")
	row[m.Time] = "1600000000.75"

	records, err := e.Extract(&entity.Table{Rows: []map[string]string{row}})
	require.NoError(t, err)
	assert.Equal(t, int64(1600000000), records[0].Time)
}
