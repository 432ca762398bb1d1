package usecase

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/domain/entity"
)

// GapSignificance はギャップ補正を適用する最小の価格差です。
// これ以下のギャップは境界として扱われません。
var GapSignificance = decimal.NewFromFloat(0.01)

const (
	// backwardScanLimit は前日終値を探索する後方ウィンドウの上限（ローソク足数）です。
	backwardScanLimit = 100
	// defaultOpenHour / defaultOpenMinute は開始時刻未指定時のデフォルト（07:00）です。
	defaultOpenHour   = 7
	defaultOpenMinute = 0
)

// GapParams はギャップ補正のリクエスト単位の設定です。
// どちらも省略可能な "HH:MM"（24時間制）の文字列です。
type GapParams struct {
	// PrevCloseTime は前セッションの終値を特定する壁時計時刻です。
	// 未指定の場合は直前のローソク足の終値を参照します。
	PrevCloseTime string
	// CurrentOpenTime は新しいセッションの始まりを示す壁時計時刻です。
	// 未指定の場合は07:00かつ通常取引時間のローソク足を開始点とします。
	CurrentOpenTime string
}

// timeOfDay は解析済みの壁時計時刻（時・分）です。
type timeOfDay struct {
	hour   int
	minute int
}

// parseTimeOfDay は"HH:MM"文字列を解析します。不正な形式はパラメータ未指定として
// 扱われます（警告ログのみ、致命的エラーにはしません）。
func parseTimeOfDay(s string) (timeOfDay, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return timeOfDay{}, false
	}
	hour, err1 := strconv.Atoi(parts[0])
	minute, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return timeOfDay{}, false
	}
	return timeOfDay{hour: hour, minute: minute}, true
}

// gapAdjuster はセッション境界の価格ギャップを累積的な加法シフトで吸収します。
type gapAdjuster struct{}

// newGapAdjuster はgapAdjusterの新しいインスタンスを生成します。
func newGapAdjuster() *gapAdjuster {
	return &gapAdjuster{}
}

// Adjust は時系列順・分類済み・フィルタ済みのローソク足列を1回の前方パスで走査し、
// 検出したセッション開始点以降のすべてのローソク足へギャップ分を加算した
// 新しい列を返します。入力は変更しません。
//
// シフトは走査中に保持する単一のオフセット値として表現されます。境界が複数ある場合、
// 後の境界はそれまでのシフトが適用された値からギャップを再計算するため、
// 補正は累積的に合成されます。
func (ga *gapAdjuster) Adjust(candles []entity.Candle, params GapParams) []entity.Candle {
	openTime, useDefaultOpen := ga.resolveOpenTime(params)
	closeTime, hasCloseTime := ga.resolveCloseTime(params)

	out := make([]entity.Candle, len(candles))
	if len(candles) == 0 {
		return out
	}
	// 先頭のローソク足はセッション開始点として扱われない
	out[0] = candles[0]

	log.Infof("Starting gap adjustment for %d candles", len(candles))

	offset := 0.0
	for i := 1; i < len(candles); i++ {
		c := candles[i]

		if ga.isTargetOpen(c, openTime, useDefaultOpen) {
			// ここまでのシフトが適用された状態の始値を基準にギャップを計算する
			currentOpen := c.Open + offset
			prevClose := ga.resolveRefClose(out, i, closeTime, hasCloseTime)

			gap := decimal.NewFromFloat(prevClose).Sub(decimal.NewFromFloat(currentOpen))
			log.Infof("Gap at index %d: prev_close=%.4f, current_open=%.4f, gap=%s",
				i, prevClose, currentOpen, gap)

			if gap.Abs().GreaterThan(GapSignificance) {
				g, _ := gap.Float64()
				offset += g
				log.Infof("Applied gap adjustment of %s to %d candles", gap, len(candles)-i)
			}
		}

		c.Open += offset
		c.High += offset
		c.Low += offset
		c.Close += offset
		out[i] = c
	}
	return out
}

// resolveOpenTime はセッション開始時刻を決定します。
// 戻り値の第2値は、デフォルト（07:00・通常取引時間必須）を使うかどうかです。
func (ga *gapAdjuster) resolveOpenTime(params GapParams) (timeOfDay, bool) {
	if params.CurrentOpenTime != "" {
		if t, ok := parseTimeOfDay(params.CurrentOpenTime); ok {
			log.Infof("Using custom current open time: %02d:%02d", t.hour, t.minute)
			return t, false
		}
		log.Warnf("Invalid current_open_time format: %s", params.CurrentOpenTime)
	}
	return timeOfDay{hour: defaultOpenHour, minute: defaultOpenMinute}, true
}

// resolveCloseTime は前セッション終値の探索時刻を決定します。
// 未指定または不正な形式の場合は直前ローソク足フォールバックが使われます。
func (ga *gapAdjuster) resolveCloseTime(params GapParams) (timeOfDay, bool) {
	if params.PrevCloseTime == "" {
		return timeOfDay{}, false
	}
	t, ok := parseTimeOfDay(params.PrevCloseTime)
	if !ok {
		log.Warnf("Invalid prev_close_time format: %s", params.PrevCloseTime)
		return timeOfDay{}, false
	}
	log.Infof("Using custom prev close time: %02d:%02d", t.hour, t.minute)
	return t, true
}

// isTargetOpen はローソク足がセッション開始点に一致するかを判定します。
// 通常取引時間であることの要求はデフォルト開始時刻を使う場合にのみ課されます。
func (ga *gapAdjuster) isTargetOpen(c entity.Candle, openTime timeOfDay, useDefault bool) bool {
	if c.Hour != openTime.hour || c.Minute != openTime.minute {
		return false
	}
	if useDefault && !c.IsRegularHours {
		return false
	}
	return true
}

// resolveRefClose は境界iに対する基準終値を解決します。探索対象は補正適用済みの列です。
//
// 終値時刻が指定されている場合はi-1から最大backwardScanLimit件まで後方に走査し、
// セッション分類に関係なく(hour, minute)が一致する最も近いローソク足の終値を使います。
// ウィンドウ下端のインデックスそのものは走査対象に含まれません。
// 見つからない場合、または終値時刻が未指定の場合は直前のローソク足の終値にフォールバックします。
func (ga *gapAdjuster) resolveRefClose(adjusted []entity.Candle, i int, closeTime timeOfDay, hasCloseTime bool) float64 {
	if hasCloseTime {
		lo := i - backwardScanLimit
		if lo < 0 {
			lo = 0
		}
		for j := i - 1; j > lo; j-- {
			if adjusted[j].Hour == closeTime.hour && adjusted[j].Minute == closeTime.minute {
				log.Infof("Found target prev close at index %d: %02d:%02d, close=%.4f",
					j, closeTime.hour, closeTime.minute, adjusted[j].Close)
				return adjusted[j].Close
			}
		}
		log.Warnf("Could not find %02d:%02d candle, using previous candle",
			closeTime.hour, closeTime.minute)
	}
	return adjusted[i-1].Close
}
