package analytics

import (
	"math"
	"time"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// Confidence labels how stable the months behind a projection were.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Coefficient-of-variation bounds for the confidence labels (inclusive).
const (
	highConfidenceCV   = 0.15
	mediumConfidenceCV = 0.35
)

// Prediction is one next-month projection.
type Prediction struct {
	Metric         string     `json:"metric"`
	Predicted      string     `json:"predicted"`
	PredictedValue int64      `json:"predictedValue"`
	Confidence     Confidence `json:"confidence"`
	Trend          string     `json:"trend"`
	Description    string     `json:"description"`
	TrendDirection string     `json:"trendDirection"`
}

// Projection is the outcome of averaging a three-month series.
type Projection struct {
	Predicted  int64
	TrendPct   int64
	Confidence Confidence
}

// Project forecasts next month's revenue and order volume as the mean of
// the current and two preceding months. It returns an empty slice when
// there are no orders at all.
func Project(orders []models.Order, now time.Time) []Prediction {
	if len(orders) == 0 {
		return []Prediction{}
	}

	curr := MonthOfTime(now)
	months := []MonthKey{curr, curr.Add(-1), curr.Add(-2)}

	var revenue, count [3]float64
	for _, o := range orders {
		mk := MonthOf(o.Date)
		for i, k := range months {
			if mk == k {
				revenue[i] += o.Amount
				count[i]++
				break
			}
		}
	}

	rev := ProjectSeries(revenue)
	cnt := ProjectSeries(count)
	return []Prediction{
		{
			Metric:         "Next Month Revenue",
			Predicted:      CurrencySymbol + GroupIndian(rev.Predicted),
			PredictedValue: rev.Predicted,
			Confidence:     rev.Confidence,
			Trend:          SignedPercent(rev.TrendPct) + " vs last month",
			Description:    "Projected based on 3-month average revenue",
			TrendDirection: direction(rev.TrendPct),
		},
		{
			Metric:         "Next Month Order Volume",
			Predicted:      GroupIndian(cnt.Predicted),
			PredictedValue: cnt.Predicted,
			Confidence:     cnt.Confidence,
			Trend:          SignedPercent(cnt.TrendPct) + " vs last month",
			Description:    "Projected based on 3-month average order count",
			TrendDirection: direction(cnt.TrendPct),
		},
	}
}

// ProjectSeries averages series (current month first). The trend compares
// the rounded average with series[1], the month before the current one.
func ProjectSeries(series [3]float64) Projection {
	mean := (series[0] + series[1] + series[2]) / 3
	predicted := Round(mean)

	var trend int64
	if last := series[1]; last > 0 {
		trend = Round((float64(predicted) - last) / last * 100)
	}

	cv := 1.0
	if mean > 0 {
		var variance float64
		for _, x := range series {
			variance += (x - mean) * (x - mean)
		}
		cv = math.Sqrt(variance/3) / mean
	}

	return Projection{Predicted: predicted, TrendPct: trend, Confidence: confidenceFor(cv)}
}

func confidenceFor(cv float64) Confidence {
	switch {
	case cv <= highConfidenceCV:
		return ConfidenceHigh
	case cv <= mediumConfidenceCV:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func direction(trend int64) string {
	if trend >= 0 {
		return "up"
	}
	return "down"
}
