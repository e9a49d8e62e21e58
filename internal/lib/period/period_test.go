package period

import (
	"testing"
	"time"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
)

func TestEnd_TableTests(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		planType string
		want     time.Time
	}{
		{
			name:     "monthly plan mid month",
			start:    time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
			planType: models.PlanMonthly,
			want:     time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "monthly plan december rolls over year",
			start:    time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
			planType: models.PlanMonthly,
			want:     time.Date(2027, 1, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monthly plan clamps january 31 to february end",
			start:    time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			planType: models.PlanMonthly,
			want:     time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monthly plan clamps to february 29 in leap year",
			start:    time.Date(2028, 1, 31, 0, 0, 0, 0, time.UTC),
			planType: models.PlanMonthly,
			want:     time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "monthly plan clamps 31 to 30",
			start:    time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			planType: models.PlanMonthly,
			want:     time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "yearly plan",
			start:    time.Date(2026, 8, 31, 12, 30, 0, 0, time.UTC),
			planType: models.PlanYearly,
			want:     time.Date(2027, 8, 31, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "yearly plan clamps february 29 to 28",
			start:    time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC),
			planType: models.PlanYearly,
			want:     time.Date(2029, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "unknown plan defaults to monthly",
			start:    time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			planType: "weekly",
			want:     time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := End(tt.start, tt.planType)
			if !got.Equal(tt.want) {
				t.Errorf("End(%v, %q) = %v, want %v", tt.start, tt.planType, got, tt.want)
			}
		})
	}
}
