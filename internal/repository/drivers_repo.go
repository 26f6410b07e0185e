package repository

import (
	"context"
	"time"

	"fleetlink-report/internal/domain"
)

// DriversRepo 司机信息查询（本服务只读）
type DriversRepo interface {
	// GetDriver 按 id 查司机，不存在返回 sql.ErrNoRows 包装错误
	GetDriver(ctx context.Context, driverID string) (*domain.Driver, error)
}

// VehiclesRepo 车辆分配查询（本服务只读）
type VehiclesRepo interface {
	// GetActiveRegistration 查司机在给定时刻有效的车辆牌照
	// 没有有效分配时返回 ("", false, nil)，不算错误
	GetActiveRegistration(ctx context.Context, driverID string, at time.Time) (string, bool, error)
}
