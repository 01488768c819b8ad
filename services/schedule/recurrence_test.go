package schedule

import (
	"testing"

	"courtside/models"
)

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-03-11", "MONDAY"},
		{"2024-03-12", "TUESDAY"},
		{"2024-03-13", "WEDNESDAY"},
		{"2024-03-14", "THURSDAY"},
		{"2024-03-15", "FRIDAY"},
		{"2024-03-16", "SATURDAY"},
		{"2024-03-17", "SUNDAY"},
	}
	for _, tt := range tests {
		got, err := WeekdayName(tt.date)
		if err != nil {
			t.Fatalf("WeekdayName(%q) returned error: %v", tt.date, err)
		}
		if got != tt.want {
			t.Errorf("WeekdayName(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestWeekdayNameInvalid(t *testing.T) {
	if _, err := WeekdayName("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestActiveBlocks(t *testing.T) {
	blocks := []models.ReservedTimeBlock{
		{
			StartTime:       "17:00",
			Duration:        120,
			Type:            models.BlockTypeTraining,
			Repeat:          models.RepeatWeekly,
			Days:            []string{"MONDAY"},
			DatesNotApplied: []string{"2024-03-11"},
		},
		{
			StartTime: "08:00",
			Duration:  60,
			Type:      models.BlockTypeOther,
			Repeat:    models.RepeatWeekly,
			Days:      []string{"TUESDAY", "THURSDAY"},
		},
		{
			// No days: inert, never recurs.
			StartTime: "12:00",
			Duration:  60,
			Type:      models.BlockTypeOther,
			Repeat:    models.RepeatWeekly,
		},
	}

	t.Run("exception date suppresses the block", func(t *testing.T) {
		if got := ActiveBlocks(blocks, "2024-03-11"); len(got) != 0 {
			t.Errorf("expected no active blocks on excepted Monday, got %d", len(got))
		}
	})

	t.Run("block is active on another matching weekday", func(t *testing.T) {
		got := ActiveBlocks(blocks, "2024-03-18")
		if len(got) != 1 || got[0].StartTime != "17:00" {
			t.Errorf("expected the Monday training block on 2024-03-18, got %v", got)
		}
	})

	t.Run("multi-day block matches each listed weekday", func(t *testing.T) {
		for _, date := range []string{"2024-03-12", "2024-03-14"} {
			got := ActiveBlocks(blocks, date)
			if len(got) != 1 || got[0].StartTime != "08:00" {
				t.Errorf("expected the 08:00 block on %s, got %v", date, got)
			}
		}
	})

	t.Run("no blocks on unlisted weekday", func(t *testing.T) {
		if got := ActiveBlocks(blocks, "2024-03-16"); len(got) != 0 {
			t.Errorf("expected no active blocks on Saturday, got %d", len(got))
		}
	})
}

func TestDatetimeSplit(t *testing.T) {
	if got := DateOf("2024-03-11T10:00"); got != "2024-03-11" {
		t.Errorf("DateOf = %q", got)
	}
	if got := TimeOf("2024-03-11T10:00"); got != "10:00" {
		t.Errorf("TimeOf = %q", got)
	}
	if got := TimeOf("2024-03-11"); got != "" {
		t.Errorf("TimeOf without time part = %q, want empty", got)
	}
}
