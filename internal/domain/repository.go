package domain

import "context"

// Entity 持久化实体约束：拥有整型主键
type Entity interface {
	EntityID() int
}

// Repository 通用仓储接口（依赖倒置原则）
// 设计说明:
// 1. 由domain层定义接口,infrastructure层的BaseRepository实现
// 2. 每个写操作单独提交一次(一个请求对应一次数据库往返),不做批量
// 3. 查不到记录不是错误:GetByID返回nil,Delete视为无操作
type Repository[T Entity] interface {
	// GetAll 查询全部记录(按主键升序),无记录时返回空切片
	GetAll(ctx context.Context) ([]*T, error)

	// GetByID 根据主键查询,不存在返回nil, nil
	// 返回的实体已脱离会话跟踪,调用方修改它不会影响数据库
	GetByID(ctx context.Context, id int) (*T, error)

	// Insert 插入并立即提交,返回回填了主键的实体
	Insert(ctx context.Context, entity *T) (*T, error)

	// Update 整行替换并立即提交
	// 主键不存在时的行为由存储引擎决定(GORM Save会退化为插入)
	// 不支持插入的实现应返回nil, nil表示记录不存在
	Update(ctx context.Context, entity *T) (*T, error)

	// Delete 根据主键删除并立即提交,记录不存在时直接返回nil
	Delete(ctx context.Context, id int) error
}
