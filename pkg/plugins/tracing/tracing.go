// Package tracing provides a router plugin that records every navigation as
// an OpenTelemetry span.
package tracing

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routerplugin/pkg/plugin"
	"github.com/vango-dev/routerplugin/pkg/router"
)

// Default tracer name for the plugin system.
const defaultTracerName = "routerplugin"

// Config configures the tracing plugin.
type Config struct {
	// TracerName is the name of the tracer (default: "routerplugin").
	TracerName string

	// TracerProvider supplies the tracer. Default: the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which navigations to trace.
	// Return true to trace, false to skip. Nil traces everything.
	Filter func(to, from *router.Route) bool

	// AttributeExtractor extracts custom attributes for each traced
	// navigation.
	AttributeExtractor func(to, from *router.Route) []attribute.KeyValue
}

// Option configures the tracing plugin.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

// WithFilter sets a filter for traced navigations.
func WithFilter(filter func(to, from *router.Route) bool) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(to, from *router.Route) []attribute.KeyValue) Option {
	return func(c *Config) {
		c.AttributeExtractor = extractor
	}
}

func defaultConfig() Config {
	return Config{
		TracerName: defaultTracerName,
	}
}

// New creates the OpenTelemetry tracing plugin.
//
// A span opens in the before-guard and closes in the after-hook of each
// navigation, carrying the target path, the matched route name, and any
// custom attributes. Aborted navigations never reach the after-hook, so
// their spans end at the next committed navigation or at uninstall.
//
// The tracer comes from the configured provider, or the global provider if
// none is set. Configure the global provider in main() as usual:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func New(opts ...Option) plugin.Plugin {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return plugin.Func(func(ctx *plugin.Context) {
		// One in-flight span at a time: navigation is strictly sequential.
		var mu sync.Mutex
		var active trace.Span

		endActive := func() {
			mu.Lock()
			span := active
			active = nil
			mu.Unlock()
			if span != nil {
				span.End()
			}
		}

		removeBefore := ctx.Router.BeforeEach(func(to, from *router.Route) error {
			if config.Filter != nil && !config.Filter(to, from) {
				return nil
			}

			endActive()

			attrs := []attribute.KeyValue{
				attribute.String("router.to_path", to.Path),
				attribute.Bool("router.matched", to.Matched),
			}
			if to.Name != "" {
				attrs = append(attrs, attribute.String("router.route", to.Name))
			}
			if from != nil {
				attrs = append(attrs, attribute.String("router.from_path", from.Path))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(to, from)...)
			}

			_, span := tracer.Start(context.Background(), "navigate "+to.Path,
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(attrs...),
			)

			mu.Lock()
			active = span
			mu.Unlock()
			return nil
		})

		removeAfter := ctx.Router.AfterEach(func(to, from *router.Route) {
			endActive()
		})

		ctx.OnUninstall(func() {
			endActive()
			removeBefore()
			removeAfter()
		})
	})
}
