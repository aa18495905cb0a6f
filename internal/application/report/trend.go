package report

import (
	"time"

	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// TrendPoint movimiento de stock de un tramo del rango.
type TrendPoint struct {
	Label      string    `json:"label"`
	Start      time.Time `json:"start"`
	Added      int       `json:"added"`   // unidades que entraron
	Removed    int       `json:"removed"` // unidades que salieron
	Activities int       `json:"activities"`
}

// Net variación neta de stock del tramo.
func (p TrendPoint) Net() int { return p.Added - p.Removed }

// buckets tramos del rango: días para 7d, semanas para 30d, bloques de 30 días para 90d
// y trimestres para 1y.
func (r TimeRange) buckets(now time.Time) []time.Time {
	cutoff := r.Cutoff(now)
	var starts []time.Time
	switch {
	case r.years > 0:
		for t := cutoff; t.Before(now); t = t.AddDate(0, 3, 0) {
			starts = append(starts, t)
		}
	default:
		step := 7
		switch {
		case r.days <= 7:
			step = 1
		case r.days > 30:
			step = 30
		}
		for t := cutoff; t.Before(now); t = t.AddDate(0, 0, step) {
			starts = append(starts, t)
		}
	}
	return starts
}

// Trend agrupa los logs del rango por tramo. Los logs fuera de [cutoff, now] se ignoran.
func Trend(logs []*entity.StockLog, r TimeRange, now time.Time) []TrendPoint {
	starts := r.buckets(now)
	points := make([]TrendPoint, len(starts))
	for i, s := range starts {
		points[i] = TrendPoint{Label: s.Format("2006-01-02"), Start: s}
	}
	if len(points) == 0 {
		return points
	}
	for _, l := range logs {
		if l.Timestamp.Before(starts[0]) || l.Timestamp.After(now) {
			continue
		}
		i := len(starts) - 1
		for i > 0 && l.Timestamp.Before(starts[i]) {
			i--
		}
		points[i].Activities++
		if d := l.NewStock - l.PreviousStock; d >= 0 {
			points[i].Added += d
		} else {
			points[i].Removed -= d
		}
	}
	return points
}
