// Package handler はchartdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"chart_backend/internal/api"
	"chart_backend/internal/feature/chartdata/domain"
	"chart_backend/internal/feature/chartdata/domain/entity"
	"chart_backend/internal/feature/chartdata/usecase"
)

// ChartUsecase はCSV処理パイプラインのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	ProcessCSV(ctx context.Context, content []byte, params usecase.GapParams) (*entity.ChartResult, error)
}

// UploadHandler はCSVアップロードのHTTPリクエストを処理します。
type UploadHandler struct {
	uc ChartUsecase
}

// NewUploadHandler は指定されたusecaseでUploadHandlerの新しいインスタンスを生成します。
func NewUploadHandler(uc ChartUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

// UploadCSV はCSVファイルを受け取り、チャート表示用のローソク足データをJSONで返します。
//
// エンドポイント: POST /upload-csv
// Content-Type: multipart/form-data
// フィールド: file（CSVファイル）、prev_close_time / current_open_time（任意、"HH:MM"）
func (h *UploadHandler) UploadCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		log.Warnf("failed to read upload file: %v (remote=%s)", err, c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file is required"})
		return
	}

	// 拡張子チェックは大文字小文字を区別する
	if !strings.HasSuffix(file.Filename, ".csv") {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "file must be a CSV"})
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Errorf("failed to open upload file: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read file"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("failed to close upload file: %v", err)
		}
	}()

	content, err := io.ReadAll(f)
	if err != nil {
		log.Errorf("failed to read upload file: %v", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read file"})
		return
	}

	params := usecase.GapParams{
		PrevCloseTime:   c.PostForm("prev_close_time"),
		CurrentOpenTime: c.PostForm("current_open_time"),
	}
	log.Infof("Received file: %s, size: %d bytes (prev_close=%q, current_open=%q)",
		file.Filename, len(content), params.PrevCloseTime, params.CurrentOpenTime)

	result, err := h.uc.ProcessCSV(c.Request.Context(), content, params)
	if err != nil {
		// 必須カラム欠落はクライアントエラー、それ以外は一般エラーとして返す
		var formatErr *domain.FormatError
		status := http.StatusInternalServerError
		if errors.As(err, &formatErr) {
			status = http.StatusBadRequest
		}
		c.JSON(status, api.ErrorResponse{Error: result.Error})
		return
	}

	chartData := make([]api.ChartCandleResponse, 0, len(result.Data))
	for _, x := range result.Data {
		chartData = append(chartData, api.ChartCandleResponse{
			Time:           x.Time,
			Open:           x.Open,
			High:           x.High,
			Low:            x.Low,
			Close:          x.Close,
			IsRegularHours: x.IsRegularHours,
		})
	}

	c.JSON(http.StatusOK, api.UploadResponse{
		Success:  true,
		Filename: file.Filename,
		Summary: api.SummaryResponse{
			TotalRows: result.Summary.TotalRows,
			DateRange: api.DateRangeResponse{
				Start: result.Summary.DateRange.Start,
				End:   result.Summary.DateRange.End,
			},
			Columns: result.Summary.Columns,
		},
		ChartData: chartData,
	})
}
