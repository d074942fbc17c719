package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	jaegerclient "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// InitJaeger 初始化全局 tracer，gorm 的 opentracing 插件依赖它上报 SQL span
func InitJaeger(service, agentAddr string) (opentracing.Tracer, io.Closer) {
	cfg := &jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaegerclient.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agentAddr,
		},
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerclient.StdLogger))
	if err != nil {
		hlog.Errorf("init jaeger tracer failed: %v", err)
		return opentracing.NoopTracer{}, nopCloser{}
	}
	opentracing.SetGlobalTracer(tracer)
	return tracer, closer
}
