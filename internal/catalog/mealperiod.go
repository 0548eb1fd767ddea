package catalog

import (
	"fmt"
	"time"
)

type MealPeriod string

const (
	Breakfast MealPeriod = "breakfast"
	Lunch     MealPeriod = "lunch"
	Dinner    MealPeriod = "dinner"
)

func ParseMealPeriod(s string) (MealPeriod, error) {
	switch p := MealPeriod(s); p {
	case Breakfast, Lunch, Dinner:
		return p, nil
	}
	return "", fmt.Errorf("unknown meal period %q", s)
}

// MealPeriodForHour maps a wall-clock hour: [5,11) breakfast, [11,16) lunch, otherwise dinner.
func MealPeriodForHour(hour int) MealPeriod {
	switch {
	case hour >= 5 && hour < 11:
		return Breakfast
	case hour >= 11 && hour < 16:
		return Lunch
	default:
		return Dinner
	}
}

// MealPeriodAt resolves the period for now as seen in timezone tz. An empty or
// unknown tz falls back to the fallback location.
func MealPeriodAt(now time.Time, tz string, fallback *time.Location) MealPeriod {
	loc := fallback
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}
	if loc == nil {
		loc = time.UTC
	}
	return MealPeriodForHour(now.In(loc).Hour())
}
