package usecase

import (
	"math"

	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/domain/entity"
)

const (
	// RegularHoursStartMinute は通常取引時間の開始（07:00、分単位・境界を含む）です。
	RegularHoursStartMinute = 420
	// RegularHoursEndMinute は通常取引時間の終了（16:00、分単位・境界を含まない）です。
	RegularHoursEndMinute = 960
)

// MaxAbsolutePrice は価格の健全性チェックの上限です。
// 絶対値がこれを超えるOHLCを含むローソク足は破損データとして列から除外されます。
var MaxAbsolutePrice = 1_000_000_000.0

// sessionClassifier はローカル壁時計の時・分から各ローソク足を
// 通常時間/時間外に分類し、極端な価格のローソク足を取り除きます。
type sessionClassifier struct{}

// newSessionClassifier はsessionClassifierの新しいインスタンスを生成します。
func newSessionClassifier() *sessionClassifier {
	return &sessionClassifier{}
}

// Classify は各ローソク足に時・分のスクラッチフィールドとセッション分類を設定します。
// 分類は同一の(hour, minute)に対して常に同一の結果を返す純粋関数です。
// 一度設定された分類は以降のパスで変更されません。
func (sc *sessionClassifier) Classify(candles []entity.Candle) []entity.Candle {
	out := make([]entity.Candle, 0, len(candles))
	for _, c := range candles {
		c.Hour = c.LocalTime.Hour()
		c.Minute = c.LocalTime.Minute()
		minuteOfDay := c.MinuteOfDay()
		c.IsRegularHours = minuteOfDay >= RegularHoursStartMinute && minuteOfDay < RegularHoursEndMinute

		if extremePrice(c) {
			log.Warnf("Extreme price values detected at %s, skipping: [%v %v %v %v]",
				c.LocalTime, c.Open, c.High, c.Low, c.Close)
			continue
		}
		out = append(out, c)
	}
	return out
}

// extremePrice はいずれかのOHLC絶対値が上限を超えるかを判定します。
func extremePrice(c entity.Candle) bool {
	for _, v := range []float64{c.Open, c.High, c.Low, c.Close} {
		if math.Abs(v) > MaxAbsolutePrice {
			return true
		}
	}
	return false
}
