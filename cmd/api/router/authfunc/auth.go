package authfunc

import (
	"github.com/cloudwego/hertz/pkg/app"
	hjwt "github.com/hertz-contrib/jwt"

	"xTube.com/pkg/jwt"
)

// Auth 必须登录
func Auth(mw *hjwt.HertzJWTMiddleware) []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		mw.MiddlewareFunc(),
	)
}

// OptionalAuth 匿名可访问，携带有效 token 时识别调用方
func OptionalAuth(mw *hjwt.HertzJWTMiddleware) []app.HandlerFunc {
	return append(make([]app.HandlerFunc, 0),
		jwt.Optional(mw),
	)
}
