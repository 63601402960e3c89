package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// pathID 解析路径中的正整数ID,失败时已经写好响应
//
//	id, ok := pathID(c, "id")
//	if !ok {
//	    return
//	}
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "参数错误: "+name+"必须是正整数")
		return 0, false
	}
	return uint(id), true
}
