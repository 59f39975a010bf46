package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	t.Run("无内部错误", func(t *testing.T) {
		err := New(ErrCodeNotFound, "资源不存在")
		assert.Equal(t, "[40400] 资源不存在", err.Error())
	})

	t.Run("包含内部错误", func(t *testing.T) {
		err := Wrap(errors.New("connection refused"), "查询失败")
		assert.Equal(t, "[50000] 查询失败: connection refused", err.Error())
	})
}

func TestWrapDatabase_KeepsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed")
	err := WrapDatabase(cause, "保存失败")

	assert.Equal(t, ErrCodeDatabaseError, err.Code)
	assert.ErrorIs(t, err, cause, "底层驱动错误应可通过errors.Is识别")
}

func TestWithCause(t *testing.T) {
	cause := errors.New("EOF")
	err := ErrBindError.WithCause(cause)

	assert.Equal(t, ErrCodeBindError, err.Code)
	assert.Equal(t, ErrBindError.Message, err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, ErrBindError.Err, "预定义错误不应被修改")
}

func TestGetAppError(t *testing.T) {
	t.Run("已是AppError", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", ErrNotFound)
		appErr := GetAppError(wrapped)
		require.NotNil(t, appErr)
		assert.Equal(t, ErrCodeNotFound, appErr.Code)
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		appErr := GetAppError(errors.New("boom"))
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.True(t, IsAppError(appErr))
	})
}
