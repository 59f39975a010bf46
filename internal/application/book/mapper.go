package book

import (
	"github.com/xiebiao/bookapi/internal/domain/book"
)

// ToDTO 实体 → DTO,逐字段复制
func ToDTO(b *book.Book) *BookDTO {
	if b == nil {
		return nil
	}
	return &BookDTO{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		CraatedAt:   NewTimestamp(b.CraatedAt),
		IsAvailable: b.IsAvailable,
	}
}

// ToEntity DTO → 实体,不做任何默认值处理
func ToEntity(d *BookDTO) *book.Book {
	if d == nil {
		return nil
	}
	return &book.Book{
		ID:          d.ID,
		Title:       d.Title,
		Author:      d.Author,
		Description: d.Description,
		CraatedAt:   d.CraatedAt.Time,
		IsAvailable: d.IsAvailable,
	}
}

// ToDTOs 批量转换,保持顺序和数量
func ToDTOs(books []*book.Book) []*BookDTO {
	if books == nil {
		return nil
	}
	dtos := make([]*BookDTO, len(books))
	for i, b := range books {
		dtos[i] = ToDTO(b)
	}
	return dtos
}
