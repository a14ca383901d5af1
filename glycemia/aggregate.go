package glycemia

import (
	"math"
	"time"
)

// DayStatus is the rolled-up classification of a full monitoring day.
type DayStatus string

const (
	DayStatusGood     DayStatus = "good"
	DayStatusWarning  DayStatus = "warning"
	DayStatusCritical DayStatus = "critical"
)

type DailyAggregate struct {
	Date          time.Time `json:"date"`
	TotalReadings int       `json:"totalReadings"`
	Average       float64   `json:"average"`
	Min           float64   `json:"min"`
	Max           float64   `json:"max"`
	Completed     bool      `json:"completed"`
	Status        DayStatus `json:"status"`
}

type WeeklySummary struct {
	WeekStart     time.Time `json:"weekStart"`
	TotalReadings int       `json:"totalReadings"`
	DaysInTarget  int       `json:"daysInTarget"`
	Average       float64   `json:"average"`

	// Compliance is the raw observance percentage and may exceed 100 when a
	// patient measures more often than prescribed.
	Compliance float64 `json:"compliance"`
}

// DisplayCompliance clamps the observance percentage to [0, 100].
func (w *WeeklySummary) DisplayCompliance() float64 {
	return math.Min(math.Max(w.Compliance, 0), 100)
}

// AggregateDay rolls all readings of one calendar day into a summary. An
// empty set yields the zero aggregate rather than +/-Inf extremes. Day status
// dominance is critical over warning over good: any hypo or high reading
// makes the day critical, otherwise any warning reading makes it warning.
func AggregateDay(readings []*Reading, expectedCount int) DailyAggregate {
	aggregate := DailyAggregate{
		TotalReadings: len(readings),
		Status:        DayStatusGood,
	}
	if len(readings) == 0 {
		return aggregate
	}

	sum := 0.0
	aggregate.Min = readings[0].Value
	aggregate.Max = readings[0].Value
	for _, reading := range readings {
		sum += reading.Value
		aggregate.Min = math.Min(aggregate.Min, reading.Value)
		aggregate.Max = math.Max(aggregate.Max, reading.Value)

		switch Classify(reading.Value, reading.MealContext) {
		case StatusHypo, StatusHigh:
			aggregate.Status = DayStatusCritical
		case StatusWarning:
			if aggregate.Status != DayStatusCritical {
				aggregate.Status = DayStatusWarning
			}
		}
	}

	aggregate.Average = round2(sum / float64(len(readings)))
	aggregate.Completed = len(readings) >= expectedCount
	return aggregate
}

// AggregateWeek rolls daily aggregates into a weekly summary. The weekly
// average is the mean of the daily averages over days that have readings, so
// every monitored day carries equal weight regardless of reading count.
func AggregateWeek(days []DailyAggregate, expectedPerDay int) WeeklySummary {
	summary := WeeklySummary{}
	if len(days) == 0 {
		return summary
	}

	daysWithReadings := 0
	averageSum := 0.0
	for _, day := range days {
		summary.TotalReadings += day.TotalReadings
		if day.TotalReadings > 0 {
			daysWithReadings++
			averageSum += day.Average
		}
		if day.Status == DayStatusGood && day.TotalReadings > 0 {
			summary.DaysInTarget++
		}
	}

	if daysWithReadings > 0 {
		summary.Average = round2(averageSum / float64(daysWithReadings))
	}
	if expected := len(days) * expectedPerDay; expected > 0 {
		summary.Compliance = round1(float64(summary.TotalReadings) / float64(expected) * 100)
	}
	return summary
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
