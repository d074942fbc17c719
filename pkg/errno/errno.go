package errno

import (
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gorm.io/gorm"
)

const (
	SuccessCode       = 0
	ValidationErrCode = 10001
	AuthorizationCode = 10002
	NotFoundErrCode   = 10004
	ConflictErrCode   = 10009
	RateLimitErrCode  = 10029
	ServiceErrCode    = 10500
	UpstreamErrCode   = 10502
)

// ErrNo 业务错误，同时携带 HTTP 状态码
type ErrNo struct {
	HTTPStatus int
	ErrCode    int64
	ErrMsg     string
	Errors     []string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(status int, code int64, msg string) ErrNo {
	return ErrNo{HTTPStatus: status, ErrCode: code, ErrMsg: msg}
}

// WithMessage 复制一份并替换提示信息
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// WithErrors 附带字段级错误明细
func (e ErrNo) WithErrors(errs ...string) ErrNo {
	e.Errors = append(append([]string{}, e.Errors...), errs...)
	return e
}

// Is 按错误码比较，便于 errors.Is(err, errno.NotFoundErr)
func (e ErrNo) Is(target error) bool {
	var t ErrNo
	if !errors.As(target, &t) {
		return false
	}
	return e.ErrCode == t.ErrCode
}

var (
	Success          = NewErrNo(consts.StatusOK, SuccessCode, "Success")
	ValidationErr    = NewErrNo(consts.StatusBadRequest, ValidationErrCode, "Invalid request")
	AuthorizationErr = NewErrNo(consts.StatusUnauthorized, AuthorizationCode, "Unauthorized request")
	NotFoundErr      = NewErrNo(consts.StatusNotFound, NotFoundErrCode, "Resource not found")
	ConflictErr      = NewErrNo(consts.StatusConflict, ConflictErrCode, "Resource already exists")
	RateLimitErr     = NewErrNo(consts.StatusTooManyRequests, RateLimitErrCode, "Too many requests, please try again later")
	ServiceErr       = NewErrNo(consts.StatusInternalServerError, ServiceErrCode, "Internal server error")
	UpstreamErr      = NewErrNo(consts.StatusInternalServerError, UpstreamErrCode, "Storage service unavailable")
)

// ConvertErr 把任意 error 转成 ErrNo，未知错误统一按 ServiceErr 处理，不向外暴露细节
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	var e ErrNo
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFoundErr
	}
	return ServiceErr
}
