package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeIsProblem(t *testing.T) {
	// 全空 → 无异常
	assert.False(t, ComputeIsProblem(0, "", "", ""))

	// 任一问题字段非空 → 有异常
	assert.True(t, ComputeIsProblem(1, "", "", ""))
	assert.True(t, ComputeIsProblem(0, "dented pallet", "", ""))
	assert.True(t, ComputeIsProblem(0, "", "flat tire", ""))
	assert.True(t, ComputeIsProblem(0, "", "", "dock closed"))
}

func TestValidRouteStatus(t *testing.T) {
	assert.True(t, ValidRouteStatus(RouteStatusCompleted))
	assert.True(t, ValidRouteStatus(RouteStatusPartiallyCompleted))
	assert.True(t, ValidRouteStatus(RouteStatusCancelled))
	assert.False(t, ValidRouteStatus("DONE"))
	assert.False(t, ValidRouteStatus(""))
}

func TestReportLink_CheckConsumable(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Minute)

	link := &ReportLink{ExpiresAt: now.Add(time.Hour)}
	assert.NoError(t, link.CheckConsumable(now))

	expired := &ReportLink{ExpiresAt: now.Add(-time.Second)}
	assert.ErrorIs(t, expired.CheckConsumable(now), ErrLinkExpired)

	consumed := &ReportLink{ExpiresAt: now.Add(time.Hour), UsedAt: &used}
	assert.ErrorIs(t, consumed.CheckConsumable(now), ErrLinkUsed)

	// 已用且已过期时过期优先
	usedAndExpired := &ReportLink{ExpiresAt: now.Add(-time.Second), UsedAt: &used}
	assert.ErrorIs(t, usedAndExpired.CheckConsumable(now), ErrLinkExpired)
}
