package service

import (
	"testing"
	"time"

	"fleetlink-report/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveReportDate_MidnightBoundary(t *testing.T) {
	// 2025-01-01 23:00 UTC：华沙已经是 1 月 2 日，洛杉矶还是 1 月 1 日
	instant := time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC)

	date, err := DeriveReportDate(instant, "Europe/Warsaw")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", date)

	date, err = DeriveReportDate(instant, "America/Los_Angeles")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", date)
}

func TestDeriveReportDate_UTC(t *testing.T) {
	instant := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	date, err := DeriveReportDate(instant, "UTC")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", date)
}

func TestDeriveReportDate_InvalidZone(t *testing.T) {
	instant := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := DeriveReportDate(instant, "Mars/Olympus_Mons")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)

	_, err = DeriveReportDate(instant, "")
	assert.ErrorIs(t, err, domain.ErrInvalidTimezone)
}

func TestDeriveReportDate_Deterministic(t *testing.T) {
	instant := time.Date(2025, 3, 30, 1, 30, 0, 0, time.UTC)
	d1, err := DeriveReportDate(instant, "Europe/Warsaw")
	require.NoError(t, err)
	d2, err := DeriveReportDate(instant, "Europe/Warsaw")
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}
