package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/internal/domain"
	"github.com/xiebiao/bookapi/internal/infrastructure/persistence/dbsession"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/tracing"
)

const tracerName = "repository"

// BaseRepository 通用仓储实现
// 设计说明:
// 1. 实现domain.Repository[T],任意拥有整型主键的实体都可复用
// 2. 会话优先从context获取(HTTP中间件按请求注入),没有时为本次调用新建
// 3. 每个写操作立即SaveChanges,一次调用一次提交
// 4. 存储层错误统一包装为数据库错误,保留原始错误供errors.Is判断
type BaseRepository[T domain.Entity] struct {
	db *gorm.DB
}

// NewBaseRepository 创建通用仓储
func NewBaseRepository[T domain.Entity](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db}
}

// session 获取当前请求的会话
func (r *BaseRepository[T]) session(ctx context.Context) *dbsession.Session {
	if s, ok := dbsession.FromContext(ctx); ok {
		return s
	}
	return dbsession.New(r.db)
}

func (r *BaseRepository[T]) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracing.StartSpan(ctx, tracerName, "repository."+op, trace.WithAttributes(attrs...))
}

// GetAll 查询全部记录
func (r *BaseRepository[T]) GetAll(ctx context.Context) ([]*T, error) {
	ctx, span := r.startSpan(ctx, "GetAll")
	defer span.End()

	rows, err := dbsession.Set[T](r.session(ctx)).All(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, apperrors.WrapDatabase(err, "查询列表失败")
	}

	span.SetAttributes(attribute.Int("db.rows", len(rows)))
	return rows, nil
}

// GetByID 根据主键查询,返回的实体不受会话跟踪
func (r *BaseRepository[T]) GetByID(ctx context.Context, id int) (*T, error) {
	ctx, span := r.startSpan(ctx, "GetByID", attribute.Int("entity.id", id))
	defer span.End()

	s := r.session(ctx)
	found, err := dbsession.Set[T](s).Find(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, apperrors.WrapDatabase(err, "查询记录失败")
	}
	if found == nil {
		return nil, nil
	}

	entry := s.Entry(found)
	if entry.State() != dbsession.Unchanged {
		// 会话中有未提交的变更,返回副本
		cp := *found
		return &cp, nil
	}
	entry.SetState(dbsession.Detached)
	return found, nil
}

// Insert 插入并提交,返回回填主键后的实体
func (r *BaseRepository[T]) Insert(ctx context.Context, entity *T) (*T, error) {
	ctx, span := r.startSpan(ctx, "Insert")
	defer span.End()

	s := r.session(ctx)
	dbsession.Set[T](s).Add(entity)
	if _, err := s.SaveChanges(ctx); err != nil {
		tracing.RecordError(span, err)
		return nil, apperrors.WrapDatabase(err, "新增记录失败")
	}

	span.SetAttributes(attribute.Int("entity.id", (*entity).EntityID()))
	return entity, nil
}

// Update 整行替换并提交
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) (*T, error) {
	ctx, span := r.startSpan(ctx, "Update", attribute.Int("entity.id", (*entity).EntityID()))
	defer span.End()

	s := r.session(ctx)
	dbsession.Set[T](s).Update(entity)
	if _, err := s.SaveChanges(ctx); err != nil {
		tracing.RecordError(span, err)
		return nil, apperrors.WrapDatabase(err, "更新记录失败")
	}

	return entity, nil
}

// Delete 根据主键删除并提交,记录不存在时什么也不做
// 提交失败时实体恢复为Unchanged,错误直接返回
func (r *BaseRepository[T]) Delete(ctx context.Context, id int) error {
	ctx, span := r.startSpan(ctx, "Delete", attribute.Int("entity.id", id))
	defer span.End()

	s := r.session(ctx)
	set := dbsession.Set[T](s)

	found, err := set.Find(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return apperrors.WrapDatabase(err, "查询记录失败")
	}
	if found == nil {
		return nil
	}

	entry := set.Remove(found)
	if _, err := s.SaveChanges(ctx); err != nil {
		entry.SetState(dbsession.Unchanged)
		tracing.RecordError(span, err)
		return apperrors.WrapDatabase(err, "删除记录失败")
	}

	return nil
}
