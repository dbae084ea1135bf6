package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"class-scheduler/pkg/response"
)

// MustGetClassID 从路径参数中解析课程 id。
// 非正整数时写入 400 响应并返回 false，调用方应直接 return。
func MustGetClassID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, 10001, "课程 id 必须为正整数")
		return 0, false
	}
	return id, true
}

// MustBindJSON 绑定 JSON 请求体。
// 请求体超出 BodyLimit 时返回 413，其余绑定错误返回 400。
func MustBindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(c)
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "参数校验失败", err.Error())
		return false
	}
	return true
}
