// Package capacity содержит чистую алгоритмическую часть проверки
// вместимости: интервалы, пересечения и sweep-line по граничным точкам.
// Никакого доступа к хранилищу — только работа со списками интервалов.
package capacity

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidTimeRange = errors.New("invalid time range")

// TimeRange представляет полуоткрытый интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал и делает простую валидацию.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Duration — длительность интервала.
func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// Contains — попадает ли момент t в [Start, End).
func (tr TimeRange) Contains(t time.Time) bool {
	return !tr.Start.After(t) && tr.End.After(t)
}

// Overlaps — пересекаются ли полуоткрытые интервалы:
// a.Start < b.End && b.Start < a.End.
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && other.Start.Before(tr.End)
}

// HasOverlap проверяет, пересекается ли candidate хотя бы с одним из
// existing, и возвращает список конфликтующих интервалов.
func HasOverlap(candidate TimeRange, existing []TimeRange) (bool, []TimeRange) {
	var conflicts []TimeRange
	for _, tr := range existing {
		if candidate.Overlaps(tr) {
			conflicts = append(conflicts, tr)
		}
	}
	return len(conflicts) > 0, conflicts
}

// Fits решает, помещается ли ещё один занимающий candidate-интервал
// поверх occupied при вместимости maxCapacity.
//
// Sweep-line: достаточно проверить счётчик занятости только в граничных
// точках интервалов (начала/концы occupied плюс границы candidate),
// попадающих в [candidate.Start, candidate.End). В каждой такой точке t
// считаем интервалы, содержащие t, плюс сам candidate; превышение
// maxCapacity в любой точке — отказ.
//
// maxCapacity == 0 — всегда false: зона без активных мест трактуется
// так же, как переполненная.
func Fits(maxCapacity int, candidate TimeRange, occupied []TimeRange) bool {
	if maxCapacity <= 0 {
		return false
	}

	points := make([]time.Time, 0, 2*len(occupied)+2)
	points = append(points, candidate.Start, candidate.End)
	for _, tr := range occupied {
		points = append(points, tr.Start, tr.End)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Before(points[j]) })

	var prev time.Time
	for i, t := range points {
		if i > 0 && t.Equal(prev) {
			continue
		}
		prev = t

		if !candidate.Contains(t) {
			continue
		}

		count := 1 // сам candidate занимает точку t
		for _, tr := range occupied {
			if tr.Contains(t) {
				count++
			}
		}
		if count > maxCapacity {
			return false
		}
	}

	return true
}
