package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"xTube.com/cmd/api/handlers/pack"
	"xTube.com/cmd/api/router/authfunc"
	"xTube.com/cmd/dal"
	"xTube.com/cmd/model"
	userservice "xTube.com/cmd/user/service"
	"xTube.com/config"
	"xTube.com/config/jaeger"
	"xTube.com/config/pprof"
	"xTube.com/pkg/database"
	"xTube.com/pkg/errno"
	"xTube.com/pkg/jwt"
	"xTube.com/pkg/mq"
	"xTube.com/pkg/oss"
	"xTube.com/pkg/security"
	"xTube.com/pkg/utils"
)

func Init() (func(), error) {
	config.Init()
	cfg := config.ConfigInfo
	pprof.Load(cfg.Server.PprofAddr)

	closers := make([]func(), 0)
	if cfg.Jaeger.Enabled {
		_, closer := jaeger.InitJaeger(cfg.Server.ServiceName, cfg.Jaeger.Addr)
		closers = append(closers, func() { _ = closer.Close() })
	}

	if err := utils.InitSnowflake(cfg.Snowflake.Node); err != nil {
		return nil, err
	}
	database.Init()
	dal.Init(database.DB)

	store, err := oss.InitMinio(context.Background())
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	closers = append(closers, func() { _ = rdb.Close() })

	var producer mq.MessageProducer = mq.NopProducer{}
	if cfg.RabbitMq.Enabled {
		p, err := mq.NewProducer(utils.GetRabbitMqURL())
		if err != nil {
			// 事件只是通知，broker 不可用时不阻塞启动
			hlog.Errorf("rabbitmq unavailable, events disabled: %v", err)
		} else {
			producer = p
			closers = append(closers, func() { _ = p.Close() })
		}
	}

	pack.Init(pack.Infra{
		Store:    store,
		Locker:   security.NewRedsyncLocker(rdb, cfg.RateLimit.LockTTL),
		Producer: producer,
	})
	if cfg.RateLimit.Enabled {
		globalLimiter = security.NewSlidingWindowLimiter(rdb, "global", cfg.RateLimit.Window, cfg.RateLimit.GlobalMax)
		authLimiter = security.NewSlidingWindowLimiter(rdb, "auth", cfg.RateLimit.Window, cfg.RateLimit.AuthMax)
	}

	return func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}

var globalLimiter, authLimiter security.RateLimiter

func authenticate(ctx context.Context, identity, password string) (*model.User, error) {
	return userservice.NewUserService(ctx, nil, nil).CheckCredentials(identity, password)
}

func main() {
	shutdown, err := Init()
	if err != nil {
		hlog.Fatalf("init failed: %v", err)
	}
	cfg := config.ConfigInfo

	r := server.New(
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxBodySize),
	)
	r.OnShutdown = append(r.OnShutdown, func(ctx context.Context) { shutdown() })

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			pack.SendError(c, errno.ServiceErr)
		})))

	if cfg.Server.MetricsEnabled {
		r.Use(authfunc.Metrics())
		r.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))
	}
	r.Use(authfunc.RateLimit(globalLimiter, "global"))

	mw, err := jwt.New(jwt.Options{
		Secret:     cfg.Jwt.Secret,
		Timeout:    cfg.Jwt.Timeout,
		MaxRefresh: cfg.Jwt.MaxRefresh,
		Secure:     cfg.Jwt.Secure,
	}, authenticate, pack.Responder{})
	if err != nil {
		hlog.Fatalf("init jwt failed: %v", err)
	}

	// 注册路由
	register(r, routes{jwt: mw, authLimiter: authLimiter})

	r.Spin()
}
