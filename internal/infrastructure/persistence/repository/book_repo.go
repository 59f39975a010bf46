package repository

import (
	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// bookRepository 图书仓储实现
// 通用实现已满足图书的全部需求,这里只绑定类型参数
type bookRepository struct {
	*BaseRepository[book.Book]
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{BaseRepository: NewBaseRepository[book.Book](db)}
}
