// Package handler はsampledataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chart_backend/internal/api"
	"chart_backend/internal/feature/sampledata/domain/entity"
)

// SampleUsecase はサンプルデータ生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SampleUsecase interface {
	Generate(count int) []entity.SampleCandle
}

// SampleHandler はサンプルデータのHTTPリクエストを処理します。
type SampleHandler struct {
	uc SampleUsecase
}

// NewSampleHandler は指定されたusecaseでSampleHandlerの新しいインスタンスを生成します。
func NewSampleHandler(uc SampleUsecase) *SampleHandler {
	return &SampleHandler{uc: uc}
}

// GetSampleData はチャート動作確認用のサンプルOHLCデータをJSONで返します。
//
// エンドポイント: GET /sample-data
func (h *SampleHandler) GetSampleData(c *gin.Context) {
	candles := h.uc.Generate(0)

	out := make([]api.SampleCandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, api.SampleCandleResponse{
			Time:  x.Time,
			Open:  x.Open,
			High:  x.High,
			Low:   x.Low,
			Close: x.Close,
		})
	}

	c.JSON(http.StatusOK, api.SampleDataResponse{ChartData: out})
}
