// Package dbsession 基于GORM的工作单元(Unit of Work)
//
// 一个请求对应一个Session:仓储把新增、修改、删除登记到Session,
// 由SaveChanges在同一个数据库事务中一次性提交。
//
//	s := dbsession.New(db)
//	books := dbsession.Set[book.Book](s)
//	books.Add(&book.Book{Title: "Go"})
//	n, err := s.SaveChanges(ctx)
//
// Session不是并发安全的,不要在多个goroutine间共享。
package dbsession

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookapi/pkg/metrics"
)

// Session 工作单元
type Session struct {
	db      *gorm.DB
	entries []*Entry
	index   map[any]*Entry // 实体指针 → Entry
}

// New 创建会话(共享连接池,会话本身很轻)
func New(db *gorm.DB) *Session {
	return &Session{
		db:    db,
		index: make(map[any]*Entry),
	}
}

// DB 底层GORM连接
func (s *Session) DB() *gorm.DB {
	return s.db
}

// Entry 返回实体的跟踪记录,未被跟踪时返回Detached状态的记录
// entity必须是指针
func (s *Session) Entry(entity any) *Entry {
	if e, ok := s.index[entity]; ok {
		return e
	}
	return &Entry{session: s, entity: entity, state: Detached}
}

// HasChanges 是否存在待提交的变更
func (s *Session) HasChanges() bool {
	for _, e := range s.entries {
		if e.state.pending() {
			return true
		}
	}
	return false
}

// SaveChanges 在一个事务中提交会话内所有待提交的变更
// 返回受影响的实体数量
// 成功:Added/Modified → Unchanged,Deleted → Detached
// 失败:事务回滚,Modified/Deleted → Unchanged,Added → Detached,原样返回错误
func (s *Session) SaveChanges(ctx context.Context) (int, error) {
	var pending []*Entry
	for _, e := range s.entries {
		if e.state.pending() {
			pending = append(pending, e)
		}
	}
	if len(pending) == 0 {
		return 0, nil
	}

	start := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range pending {
			if err := apply(tx, e); err != nil {
				return err
			}
		}
		return nil
	})
	metrics.ObserveCommit(time.Since(start).Seconds(), err)

	if err != nil {
		for _, e := range pending {
			if e.state == Added {
				e.SetState(Detached)
			} else {
				e.SetState(Unchanged)
			}
		}
		return 0, err
	}

	for _, e := range pending {
		if e.state == Deleted {
			e.SetState(Detached)
		} else {
			e.SetState(Unchanged)
		}
	}
	return len(pending), nil
}

// apply 执行单个实体的变更
func apply(tx *gorm.DB, e *Entry) error {
	switch e.state {
	case Added:
		return tx.Create(e.entity).Error
	case Modified:
		// Save按主键整行更新,主键不存在时GORM退化为插入
		return tx.Save(e.entity).Error
	case Deleted:
		return tx.Delete(e.entity).Error
	}
	return nil
}

func (s *Session) track(e *Entry) {
	if _, ok := s.index[e.entity]; ok {
		return
	}
	s.index[e.entity] = e
	s.entries = append(s.entries, e)
}

func (s *Session) untrack(e *Entry) {
	if _, ok := s.index[e.entity]; !ok {
		return
	}
	delete(s.index, e.entity)
	for i, x := range s.entries {
		if x == e {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
}
