package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（销售单）
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`                      // 订单编号
	UserID      uint           `gorm:"index;not null" json:"user_id"`                             // 用户ID
	Status      string         `gorm:"index;not null" json:"status"`                              // 订单状态
	TotalAmount Money          `gorm:"type:decimal(18,2);not null;default:0" json:"total_amount"` // 订单总额
	Remarks     string         `gorm:"type:text" json:"remarks"`                                  // 备注
	CancelledAt *time.Time     `gorm:"index" json:"cancelled_at"`                                 // 取消时间（取消时回补库存的标记）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                                   // 下单时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户

	TotalQuantity float64 `gorm:"-" json:"total_quantity"` // 商品总数量（仅结构，不写入数据库）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
