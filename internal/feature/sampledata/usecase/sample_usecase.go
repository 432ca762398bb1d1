// Package usecase はsampledataフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"math"
	"math/rand"
	"time"

	"chart_backend/internal/feature/sampledata/domain/entity"
)

const (
	// DefaultSampleCount は生成するサンプルローソク足のデフォルト件数です。
	DefaultSampleCount = 100
	// sampleIntervalSeconds はサンプルローソク足の間隔（15分）です。
	sampleIntervalSeconds = 900
	// sampleBasePrice はランダムウォークの中心価格です。
	sampleBasePrice = 100.0
)

// sampleUsecase はチャート動作確認用の合成OHLCデータを生成します。
type sampleUsecase struct {
	now func() time.Time
	rng *rand.Rand
}

// NewSampleUsecase はsampleUsecaseの新しいインスタンスを生成します。
func NewSampleUsecase() *sampleUsecase {
	return &sampleUsecase{
		now: time.Now,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate は現在時刻から過去に向かって15分間隔のサンプルローソク足を
// count件生成し、時刻の昇順で返します。countが0以下の場合はデフォルト件数を使います。
func (u *sampleUsecase) Generate(count int) []entity.SampleCandle {
	if count <= 0 {
		count = DefaultSampleCount
	}

	base := u.now().Unix()
	candles := make([]entity.SampleCandle, count)
	for i := 0; i < count; i++ {
		open := sampleBasePrice + u.rng.Float64()*20 - 10
		closePrice := open + u.rng.Float64()*10 - 5
		high := math.Max(open, closePrice) + u.rng.Float64()*3
		low := math.Min(open, closePrice) - u.rng.Float64()*3

		// 昇順になるよう末尾から詰める
		candles[count-1-i] = entity.SampleCandle{
			Time:  base - int64(i)*sampleIntervalSeconds,
			Open:  round2(open),
			High:  round2(high),
			Low:   round2(low),
			Close: round2(closePrice),
		}
	}
	return candles
}

// round2 は小数第2位に丸めます。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
