// Package api は各フィーチャーのハンドラーが共有するレスポンスDTOを定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// ChartCandleResponse はチャート表示用ローソク足のレスポンスDTOです。
type ChartCandleResponse struct {
	Time           int64   `json:"time"`             // 表示用エポック秒
	Open           float64 `json:"open"`             // 始値
	High           float64 `json:"high"`             // 高値
	Low            float64 `json:"low"`              // 安値
	Close          float64 `json:"close"`            // 終値
	IsRegularHours bool    `json:"is_regular_hours"` // 通常取引時間か
}

// DateRangeResponse はサマリー中の日付範囲です。
type DateRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SummaryResponse は処理結果のサマリーです。
type SummaryResponse struct {
	TotalRows int               `json:"total_rows"`
	DateRange DateRangeResponse `json:"date_range"`
	Columns   []string          `json:"columns"`
}

// UploadResponse はCSVアップロード成功時のレスポンスです。
type UploadResponse struct {
	Success   bool                  `json:"success"`
	Filename  string                `json:"filename"`
	Summary   SummaryResponse       `json:"summary"`
	ChartData []ChartCandleResponse `json:"chart_data"`
}

// SampleCandleResponse はサンプルデータのローソク足DTOです。
type SampleCandleResponse struct {
	Time  int64   `json:"time"`
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// SampleDataResponse はサンプルデータエンドポイントのレスポンスです。
type SampleDataResponse struct {
	ChartData []SampleCandleResponse `json:"chart_data"`
}
