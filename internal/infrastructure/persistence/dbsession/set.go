package dbsession

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookapi/internal/domain"
)

// DbSet 会话中某一实体类型的集合视图
type DbSet[T domain.Entity] struct {
	session *Session
}

// Set 获取实体集合(Go方法不支持类型参数,所以是包级函数)
func Set[T domain.Entity](s *Session) *DbSet[T] {
	return &DbSet[T]{session: s}
}

// byPrimaryKey 按主键升序
var byPrimaryKey = clause.OrderByColumn{
	Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey},
}

// All 查询全部记录(按主键升序,不跟踪)
func (d *DbSet[T]) All(ctx context.Context) ([]*T, error) {
	rows := make([]*T, 0)
	if err := d.session.db.WithContext(ctx).Order(byPrimaryKey).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Find 根据主键查询,不存在返回nil, nil
// 会话中已跟踪同一主键的实体时直接返回该实体,否则查询数据库并以Unchanged跟踪
func (d *DbSet[T]) Find(ctx context.Context, id int) (*T, error) {
	if tracked := d.tracked(id); tracked != nil {
		return tracked, nil
	}

	var entity T
	err := d.session.db.WithContext(ctx).Take(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	d.session.Entry(&entity).SetState(Unchanged)
	return &entity, nil
}

// Add 登记插入,主键在提交时由数据库分配
func (d *DbSet[T]) Add(entity *T) *Entry {
	e := d.session.Entry(entity)
	e.SetState(Added)
	return e
}

// Update 登记整行更新
// 会话中已跟踪同主键的其他实例时,用新实例替换它
func (d *DbSet[T]) Update(entity *T) *Entry {
	e := d.session.Entry(entity)
	if e.State() == Added {
		return e
	}

	if id := (*entity).EntityID(); id != 0 {
		if old := d.tracked(id); old != nil && old != entity {
			d.session.Entry(old).SetState(Detached)
		}
	}

	e.SetState(Modified)
	return e
}

// Remove 登记删除;对尚未提交的Added实体只是撤销登记
func (d *DbSet[T]) Remove(entity *T) *Entry {
	e := d.session.Entry(entity)
	if e.State() == Added {
		e.SetState(Detached)
		return e
	}
	e.SetState(Deleted)
	return e
}

// tracked 查找会话中已跟踪的同类型同主键实体
func (d *DbSet[T]) tracked(id int) *T {
	if id == 0 {
		return nil
	}
	for _, e := range d.session.entries {
		if entity, ok := e.entity.(*T); ok && (*entity).EntityID() == id {
			return entity
		}
	}
	return nil
}
