package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:15")
	assert.NoError(t, err)
	assert.Equal(t, 555, got)

	_, err = ParseClock("9am")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("ATTENDANCE_LATE_AFTER", "08:30")
	t.Setenv("PORT", "8081")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, 510, cfg.Attendance.LateAfter)
	assert.Equal(t, time.UTC, cfg.Attendance.Location)
	assert.Equal(t, 10*time.Minute, cfg.Attendance.SummaryCacheTTL)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	assert.ErrorContains(t, err, "APP_TIMEZONE")
}
