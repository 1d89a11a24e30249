package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// likeOperatorByDialect 返回大小写不敏感的模糊匹配操作符。
func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// nameLikeCondition 构建名称模糊匹配条件，postgres 使用 ILIKE。
func nameLikeCondition(db *gorm.DB, column string) string {
	return fmt.Sprintf("%s %s ?", column, likeOperatorByDialect(dbDialectName(db)))
}
