package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// pathID 解析路径中的正整数ID，失败时已写入400响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams.Code, apperrors.ErrInvalidParams.Message+": 无效的"+name)
		return 0, false
	}
	return uint(id), true
}

// bindError 参数绑定/校验失败
// 校验不通过返回40900，JSON格式或类型错误返回40901
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ErrorWithCode(c, apperrors.ErrInvalidParams.Code, apperrors.ErrInvalidParams.Message+": "+err.Error())
		return
	}
	response.ErrorWithCode(c, apperrors.ErrBindError.Code, apperrors.ErrBindError.Message+": "+err.Error())
}
