package book

// BookDTO 图书传输对象(HTTP请求与响应共用)
// JSON字段名沿用已有客户端约定:主键为_id,其余字段首字母大写
// CraatedAt接受带或不带时区偏移的ISO-8601时间,不带偏移时按UTC处理
type BookDTO struct {
	ID          int       `json:"_id" example:"1"`
	Title       string    `json:"Title" example:"The Go Programming Language"`
	Author      string    `json:"Author" example:"Alan Donovan"`
	Description string    `json:"Description" example:"Go语言圣经"`
	CraatedAt   Timestamp `json:"CraatedAt" swaggertype:"string" format:"date-time" example:"2024-03-01T08:30:00Z"`
	IsAvailable bool      `json:"IsAvailable" example:"true"`
}
