// Package migrations 按方言组织的版本化SQL迁移脚本(goose格式)
package migrations

import "embed"

// FS 内嵌的迁移脚本,目录名与数据库驱动一致
//
//go:embed mysql/*.sql postgres/*.sql sqlite/*.sql
var FS embed.FS
