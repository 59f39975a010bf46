package book

import (
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrBookRequired 请求体为空
	ErrBookRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Books cannot be null")

	// ErrInvalidID 路径中的ID不是整数
	ErrInvalidID = apperrors.New(apperrors.ErrCodeInvalidParams, "无效的图书ID")
)
