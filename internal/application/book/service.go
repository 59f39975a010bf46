package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookapi/internal/domain/book"
)

// Service 图书应用服务
// 每个操作都是一次直通:映射 → 调用一次仓储 → 映射回DTO
type Service interface {
	// GetBook 不存在时返回nil, nil
	GetBook(ctx context.Context, id int) (*BookDTO, error)
	// GetAllBooks 没有图书时返回空切片,不返回nil
	GetAllBooks(ctx context.Context) ([]*BookDTO, error)
	// Create 忽略调用方提供的ID,由数据库分配
	Create(ctx context.Context, dto BookDTO) (*BookDTO, error)
	// Update 按DTO中的ID整行替换,不预先检查是否存在
	Update(ctx context.Context, dto BookDTO) (*BookDTO, error)
	// Delete 不存在时什么也不做
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo   book.Repository
	logger *zap.Logger
}

// NewService 创建图书应用服务
func NewService(repo book.Repository, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.Named("book.service"),
	}
}

func (s *service) GetBook(ctx context.Context, id int) (*BookDTO, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		s.logger.Debug("图书不存在", zap.Int("id", id))
		return nil, nil
	}
	return ToDTO(b), nil
}

func (s *service) GetAllBooks(ctx context.Context) ([]*BookDTO, error) {
	books, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := ToDTOs(books)
	if dtos == nil {
		dtos = make([]*BookDTO, 0)
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, dto BookDTO) (*BookDTO, error) {
	entity := ToEntity(&dto)
	entity.ID = 0

	created, err := s.repo.Insert(ctx, entity)
	if err != nil {
		return nil, err
	}

	s.logger.Info("图书已创建", zap.Int("id", created.ID), zap.String("title", created.Title))
	return ToDTO(created), nil
}

func (s *service) Update(ctx context.Context, dto BookDTO) (*BookDTO, error) {
	updated, err := s.repo.Update(ctx, ToEntity(&dto))
	if err != nil {
		return nil, err
	}
	// GORM仓储会插入未知主键,不会走到这里;其他仓储返回nil时由handler转成404
	if updated == nil {
		return nil, nil
	}

	s.logger.Info("图书已更新", zap.Int("id", updated.ID))
	return ToDTO(updated), nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return nil
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("图书已删除", zap.Int("id", id))
	return nil
}
