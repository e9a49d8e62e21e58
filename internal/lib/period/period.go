// Package period содержит арифметику сроков действия подписок.
package period

import (
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

// End возвращает дату окончания подписки для плана planType,
// начинающейся в start. Месячный план прибавляет календарный месяц,
// годовой — календарный год. Если в целевом месяце меньше дней,
// дата прижимается к последнему дню месяца: 31 января + месяц
// дает 28 (29) февраля, а не 2 (3) марта.
func End(start time.Time, planType string) time.Time {
	years, months := 0, 1
	if planType == models.PlanYearly {
		years, months = 1, 0
	}

	year := start.Year() + years
	month := start.Month() + time.Month(months)
	if month > time.December {
		month -= 12
		year++
	}

	day := start.Day()
	if last := lastDay(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day,
		start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
}

// lastDay возвращает число дней в месяце.
func lastDay(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
