// Package tracing 基于OpenTelemetry的分布式追踪
//
// 使用方式：
//
//	shutdown, err := tracing.InitTracer(ctx, tracing.Options{ServiceName: "book-api", Endpoint: "localhost:4317"})
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "repository", "repository.Insert")
//	defer span.End()
//
// 未调用InitTracer时otel使用全局No-op Provider，StartSpan照常可用（不产生数据）
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Options Tracer初始化参数
type Options struct {
	ServiceName string
	Endpoint    string  // OTLP gRPC端点（默认端口4317）
	SampleRatio float64 // 0~1，1表示全部采样
}

// InitTracer 初始化全局TracerProvider
// 返回的shutdown必须在程序退出前调用，否则可能丢失最后一批Span
func InitTracer(ctx context.Context, opts Options) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// 1. OTLP gRPC Exporter（生产环境应启用TLS）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(opts.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. Resource：service.name是Jaeger UI中区分服务的必需属性
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(opts.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. TracerProvider：父Span决定是否采样，根Span按比例采样
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 全局Provider与W3C Trace Context传播器
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建Span（ctx中有父Span时自动成为子Span）
func StartSpan(ctx context.Context, tracerName, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, opts...)
}

// RecordError 记录错误并把Span状态置为Error
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// ExtractTraceID 从Context提取TraceID（用于日志关联）
func ExtractTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
