package book

import (
	"time"
)

// Book 图书实体(持久化侧)
// 设计说明:
// 1. 直接映射books表,约束由数据库列保证(标题、作者非空且限长)
// 2. 主键由数据库自增生成,新建时ID为0,提交后回填
// 3. CraatedAt沿用既有的列名与JSON字段名,保持与已有客户端兼容
type Book struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"size:200;not null;comment:书名"`
	Author      string    `gorm:"size:100;not null;comment:作者"`
	Description string    `gorm:"type:text;comment:图书描述"`
	CraatedAt   time.Time `gorm:"column:craated_at;not null;comment:创建时间"`
	IsAvailable bool      `gorm:"not null;default:false;comment:是否可借"`
}

// TableName 指定表名
func (Book) TableName() string {
	return "books"
}

// EntityID 实现domain.Entity
func (b Book) EntityID() int {
	return b.ID
}
