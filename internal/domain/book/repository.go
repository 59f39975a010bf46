package book

import (
	"github.com/xiebiao/bookapi/internal/domain"
)

// Repository 图书仓储接口
// 只绑定通用仓储的类型参数,不增加任何方法;单独命名便于依赖注入和Mock替换
type Repository interface {
	domain.Repository[Book]
}
