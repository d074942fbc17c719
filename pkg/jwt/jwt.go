package jwt

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
	hjwt "github.com/hertz-contrib/jwt"

	"xTube.com/cmd/model"
	"xTube.com/pkg/constants"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/utils"
)

// Principal 已认证的调用方
type Principal struct {
	ID       int64
	Username string
}

// LoginParam 登录参数，email 与 username 二选一
type LoginParam struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Authenticator 校验登录凭证，由用户服务实现
type Authenticator func(ctx context.Context, identity, password string) (*model.User, error)

// Responder 以统一信封输出
type Responder interface {
	Success(c *app.RequestContext, status int, data interface{}, message string)
	Failure(c *app.RequestContext, err error)
}

// Options 中间件配置
type Options struct {
	Secret     string
	Timeout    time.Duration
	MaxRefresh time.Duration
	Secure     bool
}

// New 构造 access token 中间件，登录、刷新、登出都由它处理
func New(opts Options, authenticate Authenticator, out Responder) (*hjwt.HertzJWTMiddleware, error) {
	return hjwt.New(&hjwt.HertzJWTMiddleware{
		Realm:         "xtube",
		Key:           []byte(opts.Secret),
		Timeout:       opts.Timeout,
		MaxRefresh:    opts.MaxRefresh,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, cookie: " + constants.AccessTokenName,
		TokenHeadName: constants.TokenHeadName,
		TimeFunc:      time.Now,

		SendCookie:     true,
		CookieName:     constants.AccessTokenName,
		CookieHTTPOnly: true,
		SecureCookie:   opts.Secure,
		CookieSameSite: protocol.CookieSameSiteLaxMode,

		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			var req LoginParam
			if err := c.BindAndValidate(&req); err != nil {
				e := errno.ValidationErr.WithMessage("Invalid login request")
				c.Set(loginErrKey, e)
				return nil, e
			}
			identity := req.Email
			if identity == "" {
				identity = req.Username
			}
			if identity == "" || req.Password == "" {
				err := errno.ValidationErr.WithMessage("Username or email and password are required")
				c.Set(loginErrKey, err)
				return nil, err
			}
			user, err := authenticate(ctx, identity, req.Password)
			if err != nil {
				c.Set(loginErrKey, err)
				return nil, err
			}
			c.Set(constants.LoginUserKey, user)
			return user, nil
		},
		PayloadFunc: func(data interface{}) hjwt.MapClaims {
			if u, ok := data.(*model.User); ok {
				return hjwt.MapClaims{
					constants.IdentityKey:   utils.FormatID(u.ID),
					constants.UsernameClaim: u.Username,
				}
			}
			return hjwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			return principalFromClaims(hjwt.ExtractClaims(ctx, c))
		},
		HTTPStatusMessageFunc: func(e error, ctx context.Context, c *app.RequestContext) string {
			if en, ok := e.(errno.ErrNo); ok {
				return en.ErrMsg
			}
			switch e {
			case hjwt.ErrExpiredToken:
				return "Token expired"
			case hjwt.ErrEmptyAuthHeader, hjwt.ErrEmptyCookieToken, hjwt.ErrEmptyQueryToken:
				return "Unauthorized request"
			}
			return "Malformed token"
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxDebugf(ctx, "unauthorized request %s: %s", c.FullPath(), message)
			// 登录失败时 Authenticator 返回的业务错误优先
			if le, ok := c.Get(loginErrKey); ok {
				if err, ok := le.(error); ok {
					out.Failure(c, err)
					return
				}
			}
			out.Failure(c, errno.AuthorizationErr.WithMessage(message))
		},
		LoginResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			data := map[string]interface{}{
				"accessToken": token,
				"expire":      expire.Format(time.RFC3339),
			}
			if u, ok := c.Get(constants.LoginUserKey); ok {
				data["user"] = u
			}
			out.Success(c, http.StatusOK, data, "User logged in successfully")
		},
		RefreshResponse: func(ctx context.Context, c *app.RequestContext, code int, token string, expire time.Time) {
			out.Success(c, http.StatusOK, map[string]interface{}{
				"accessToken": token,
				"expire":      expire.Format(time.RFC3339),
			}, "Access token refreshed")
		},
		LogoutResponse: func(ctx context.Context, c *app.RequestContext, code int) {
			out.Success(c, http.StatusOK, map[string]interface{}{}, "User logged out")
		},
	})
}

const loginErrKey = "login_err"

func principalFromClaims(claims hjwt.MapClaims) *Principal {
	id := utils.Transfer(claims[constants.IdentityKey])
	if id <= 0 {
		return nil
	}
	name, _ := claims[constants.UsernameClaim].(string)
	return &Principal{ID: id, Username: name}
}

// CurrentUser 读取鉴权中间件写入的调用方
func CurrentUser(c *app.RequestContext) (*Principal, error) {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return nil, errno.AuthorizationErr
	}
	p, ok := v.(*Principal)
	if !ok || p == nil {
		return nil, errno.AuthorizationErr
	}
	return p, nil
}

// ViewerID 可选鉴权的路由取调用方 ID，匿名为 0
func ViewerID(c *app.RequestContext) int64 {
	if p, err := CurrentUser(c); err == nil {
		return p.ID
	}
	return 0
}

// Optional 有合法 token 时写入调用方，否则按匿名继续
func Optional(mw *hjwt.HertzJWTMiddleware) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if claims, err := mw.GetClaimsFromJWT(ctx, c); err == nil {
			if p := principalFromClaims(claims); p != nil {
				c.Set(constants.IdentityKey, p)
			}
		}
		c.Next(ctx)
	}
}
