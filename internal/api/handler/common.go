package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
)

// parsePagination 解析 page/limit 查询参数，默认第 1 页每页 10 条，上限 100
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// parseIDParam 解析路径中的数字 ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseQueryID 解析查询串中的数字 ID
func parseQueryID(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// saveUploadedFile 将上传文件落到本地临时目录，返回路径与清理函数。
// 字段不存在时返回空路径且不报错，由调用方决定是否必填。
func saveUploadedFile(c *gin.Context, field string) (string, func(), error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", func() {}, nil
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s%s", xid.New().String(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", func() {}, err
	}
	return path, func() { os.Remove(path) }, nil
}
