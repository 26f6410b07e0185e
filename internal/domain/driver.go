package domain

// Driver 司机（对应 drivers 表，本服务只读）
type Driver struct {
	DriverID    string `db:"driver_id"`
	CompanyID   string `db:"company_id"`
	DisplayName string `db:"display_name"`
	Status      string `db:"status"`
}

