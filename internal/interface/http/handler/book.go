package handler

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	appbook "github.com/xiebiao/bookapi/internal/application/book"
	"github.com/xiebiao/bookapi/internal/domain/book"
	apperrors "github.com/xiebiao/bookapi/pkg/errors"
	"github.com/xiebiao/bookapi/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookService appbook.Service
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookService appbook.Service) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// GetBook 查询单本图书
// @Summary      查询图书
// @Description  根据ID查询图书
// @Tags         Books
// @Produce      json
// @Param        id   path      int  true  "图书ID"
// @Success      200  {object}  appbook.BookDTO
// @Failure      400  {object}  response.Response "ID不是整数"
// @Failure      404  {object}  response.Response "图书不存在"
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	dto, err := h.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if dto == nil {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	response.OK(c, dto)
}

// GetAllBooks 查询全部图书
// @Summary      图书列表
// @Description  返回全部图书,没有图书时返回空数组
// @Tags         Books
// @Produce      json
// @Success      200  {array}   appbook.BookDTO
// @Failure      500  {object}  response.Response "数据库错误"
// @Router       /api/books [get]
func (h *BookHandler) GetAllBooks(c *gin.Context) {
	dtos, err := h.bookService.GetAllBooks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dtos)
}

// Create 新增图书
// @Summary      新增图书
// @Description  请求体中的_id会被忽略,由数据库分配
// @Tags         Books
// @Accept       json
// @Produce      json
// @Param        book  body      appbook.BookDTO  true  "图书信息"
// @Success      201   {object}  appbook.BookDTO
// @Header       201   {string}  Location  "/api/books/{id}"
// @Failure      400   {object}  response.Response "请求体为空或格式错误"
// @Failure      500   {object}  response.Response "数据库错误"
// @Router       /api/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	req, ok := bindBook(c)
	if !ok {
		return
	}

	created, err := h.bookService.Create(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, fmt.Sprintf("/api/books/%d", created.ID), created)
}

// Update 整体更新图书
// @Summary      更新图书
// @Description  按请求体中的_id整行替换
// @Tags         Books
// @Accept       json
// @Produce      json
// @Param        book  body      appbook.BookDTO  true  "图书信息"
// @Success      200   {object}  appbook.BookDTO
// @Failure      400   {object}  response.Response "请求体为空或格式错误"
// @Failure      404   {object}  response.Response "图书不存在"
// @Failure      500   {object}  response.Response "数据库错误"
// @Router       /api/books [put]
func (h *BookHandler) Update(c *gin.Context) {
	req, ok := bindBook(c)
	if !ok {
		return
	}

	updated, err := h.bookService.Update(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if updated == nil {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	response.OK(c, updated)
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         Books
// @Param        id   path      int  true  "图书ID"
// @Success      204  "删除成功"
// @Failure      400  {object}  response.Response "ID不是整数"
// @Failure      404  {object}  response.Response "图书不存在"
// @Failure      500  {object}  response.Response "数据库错误"
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := bookID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	dto, err := h.bookService.GetBook(ctx, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if dto == nil {
		response.Error(c, book.ErrBookNotFound)
		return
	}

	if err := h.bookService.Delete(ctx, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// bookID 解析路径参数id
func bookID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, book.ErrInvalidID.WithCause(err))
		return 0, false
	}
	return id, true
}

// bindBook 读取并解析请求体
// 空请求体和字面量null视为缺少参数,其余解析失败视为格式错误
func bindBook(c *gin.Context) (*appbook.BookDTO, bool) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperrors.ErrBindError.WithCause(err))
		return nil, false
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		response.Error(c, book.ErrBookRequired)
		return nil, false
	}

	var req appbook.BookDTO
	if err := binding.JSON.BindBody(trimmed, &req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数格式错误: "+err.Error())
		return nil, false
	}
	return &req, true
}
