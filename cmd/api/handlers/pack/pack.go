package pack

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"xTube.com/pkg/errno"
	"xTube.com/pkg/jwt"
	"xTube.com/pkg/pagination"
	"xTube.com/pkg/utils"
)

// Response 成功响应
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorResponse 失败响应
type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Errors     []string `json:"errors"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
}

// SendResponse pack response
func SendResponse(c *app.RequestContext, status int, data interface{}, message string) {
	if data == nil {
		data = map[string]interface{}{}
	}
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// SendError 未知错误统一 500，不向外暴露细节
func SendError(c *app.RequestContext, err error) {
	e := errno.ConvertErr(err)
	if e.HTTPStatus >= 500 {
		hlog.Errorf("%s %s failed: %+v", c.Method(), c.FullPath(), err)
	}
	errs := e.Errors
	if errs == nil {
		errs = []string{}
	}
	c.JSON(e.HTTPStatus, ErrorResponse{
		StatusCode: e.HTTPStatus,
		Errors:     errs,
		Message:    e.ErrMsg,
		Success:    false,
	})
}

// Responder jwt 中间件的输出
type Responder struct{}

var _ jwt.Responder = Responder{}

func (Responder) Success(c *app.RequestContext, status int, data interface{}, message string) {
	SendResponse(c, status, data, message)
}

func (Responder) Failure(c *app.RequestContext, err error) {
	SendError(c, err)
}

// Bind 绑定并校验请求参数
func Bind(c *app.RequestContext, req interface{}) error {
	if err := c.BindAndValidate(req); err != nil {
		return errno.ValidationErr.WithErrors(err.Error())
	}
	return nil
}

// PathID 解析路径参数中的实体 ID
func PathID(c *app.RequestContext, param, field string) (int64, error) {
	return utils.ParseID(c.Param(param), field)
}

func Page(c *app.RequestContext) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}

// UserID 当前登录用户的 ID
func UserID(c *app.RequestContext) (int64, error) {
	p, err := jwt.CurrentUser(c)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}
