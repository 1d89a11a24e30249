package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name        string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`   // 商品名称（唯一）
	Description string         `gorm:"type:text" json:"description"`                        // 商品描述
	PriceAmount Money          `gorm:"type:decimal(18,2);not null;default:0" json:"price"`  // 单价
	Stock       float64        `gorm:"not null;default:0" json:"stock"`                     // 库存数量
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                 // 是否上架
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`                   // 排序权重
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	// 关联
	Categories []Category `gorm:"many2many:product_categories;" json:"categories,omitempty"` // 分类列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
