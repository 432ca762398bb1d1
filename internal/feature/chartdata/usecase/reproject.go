package usecase

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"chart_backend/internal/feature/chartdata/domain/entity"
)

// timezoneReprojector はUTCエポックを表示タイムゾーンの壁時計時刻へ変換し、
// その市民時刻（年〜秒）をそのままUTCとして読み直した「表示用エポック」を計算します。
//
// 表示用エポックはUTCしか解釈できない描画側にローカル時刻を見せるための
// 表示レイヤー上の仕掛けであり、正しい絶対時刻変換ではありません。
// 夏時間の切り替わりをゾーン変換に委ねるため、固定オフセットの加算では計算しないこと。
type timezoneReprojector struct {
	loc *time.Location
}

// newTimezoneReprojector はtimezoneReprojectorの新しいインスタンスを生成します。
func newTimezoneReprojector(loc *time.Location) *timezoneReprojector {
	return &timezoneReprojector{loc: loc}
}

// Reproject はRawRecordの列からCandleの列を構築し、表示用エポックの昇順に
// 並べ替えて返します。空の価格は0として扱います。
func (r *timezoneReprojector) Reproject(records []entity.RawRecord) []entity.Candle {
	candles := make([]entity.Candle, 0, len(records))
	for _, rec := range records {
		local := time.Unix(rec.Time, 0).In(r.loc)
		candles = append(candles, entity.Candle{
			EpochUTC:     rec.Time,
			LocalTime:    local,
			DisplayEpoch: reinterpretAsUTC(local),
			Open:         deref(rec.Open),
			High:         deref(rec.High),
			Low:          deref(rec.Low),
			Close:        deref(rec.Close),
		})
	}

	sort.SliceStable(candles, func(i, j int) bool {
		return candles[i].DisplayEpoch < candles[j].DisplayEpoch
	})

	if len(candles) > 0 {
		first := candles[0]
		log.Infof("Time conversion - Original UTC: %s", time.Unix(first.EpochUTC, 0).UTC())
		log.Infof("                  Local Time: %s", first.LocalTime)
		log.Infof("                  Display Epoch: %d", first.DisplayEpoch)
	}
	return candles
}

// reinterpretAsUTC はローカル壁時計時刻の6つの市民フィールドを
// UTCの瞬間として読み直したエポック秒を返します。
func reinterpretAsUTC(local time.Time) int64 {
	return time.Date(
		local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(),
		0, time.UTC,
	).Unix()
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
