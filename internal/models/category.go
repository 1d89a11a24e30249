package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 分类名称（唯一）
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`                  // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间

	Products []Product `gorm:"many2many:product_categories;" json:"products,omitempty"` // 关联商品

	ProductsNumber int64 `gorm:"-" json:"products_number"` // 关联商品数量（仅结构，不写入数据库）
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// ProductCategory 商品-分类关联表
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey" json:"product_id"`  // 商品ID
	CategoryID uint `gorm:"primaryKey" json:"category_id"` // 分类ID
}

// TableName 指定表名
func (ProductCategory) TableName() string {
	return "product_categories"
}
