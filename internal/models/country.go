package models

import (
	"time"

	"gorm.io/gorm"
)

// Country 国家表
type Country struct {
	ID        uint           `gorm:"primarykey" json:"id"`                            // 主键
	Name      string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 国家名称（唯一）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间

	States []State `gorm:"foreignKey:CountryID" json:"states,omitempty"` // 州/省列表

	StatesNumber int64 `gorm:"-" json:"states_number"` // 州/省数量（仅结构，不写入数据库）
}

// TableName 指定表名
func (Country) TableName() string {
	return "countries"
}

// State 州/省表
type State struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                        // 主键
	CountryID uint           `gorm:"not null;uniqueIndex:idx_state_country_name" json:"country_id"`               // 国家ID
	Name      string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_state_country_name" json:"name"`   // 名称（国家内唯一）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                                     // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                                  // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                              // 软删除时间

	Country *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"` // 所属国家
	Cities  []City   `gorm:"foreignKey:StateID" json:"cities,omitempty"`    // 城市列表

	CitiesNumber int64 `gorm:"-" json:"cities_number"` // 城市数量（仅结构，不写入数据库）
}

// TableName 指定表名
func (State) TableName() string {
	return "states"
}

// City 城市表
type City struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                                     // 主键
	StateID   uint           `gorm:"not null;uniqueIndex:idx_city_state_name" json:"state_id"`                 // 州/省ID
	Name      string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_city_state_name" json:"name"`   // 名称（州内唯一）
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                                  // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                                               // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                                           // 软删除时间

	State *State `gorm:"foreignKey:StateID" json:"state,omitempty"` // 所属州/省
}

// TableName 指定表名
func (City) TableName() string {
	return "cities"
}
