package models

import "time"

// Order 订单表（下单成功后不可变更）
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`                             // 主键
	OrderNo   string    `gorm:"uniqueIndex;not null" json:"order_no"`             // 订单编号
	UserID    uint      `gorm:"index;not null" json:"user_id"`                    // 用户ID
	Total     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // 订单总额
	CreatedAt time.Time `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
