// Package metrics provides a router plugin that exposes navigation and
// plugin-lifecycle activity as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/routerplugin/pkg/plugin"
	"github.com/vango-dev/routerplugin/pkg/router"
)

// Config configures the metrics plugin.
type Config struct {
	// Namespace is the metrics namespace (default: "routerplugin").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// Option configures the metrics plugin.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "routerplugin",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// collectors holds the plugin's Prometheus collectors so they can be
// unregistered at uninstall.
type collectors struct {
	navigationsTotal *prometheus.CounterVec
	pluginsInstalled prometheus.Gauge
	pendingFlushed   prometheus.Counter
	uninstallsFired  prometheus.Counter
}

func newCollectors(config Config) *collectors {
	factory := promauto.With(config.Registry)

	return &collectors{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of committed navigations by route name",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),

		pluginsInstalled: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "plugins_installed",
			Help:        "Number of plugins installed on the router",
			ConstLabels: config.ConstLabels,
		}),

		pendingFlushed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "context_callbacks_flushed_total",
			Help:        "Total queued context callbacks flushed at attachment",
			ConstLabels: config.ConstLabels,
		}),

		uninstallsFired: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "uninstall_callbacks_total",
			Help:        "Total uninstall callbacks fired at unmount",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (c *collectors) unregister(registry prometheus.Registerer) {
	registry.Unregister(c.navigationsTotal)
	registry.Unregister(c.pluginsInstalled)
	registry.Unregister(c.pendingFlushed)
	registry.Unregister(c.uninstallsFired)
}

// New creates the Prometheus metrics plugin.
//
// Metrics collected:
//   - routerplugin_navigations_total: Counter of navigations by route name
//   - routerplugin_plugins_installed: Gauge of installed plugins
//   - routerplugin_context_callbacks_flushed_total: Counter of flushed
//     context callbacks
//   - routerplugin_uninstall_callbacks_total: Counter of fired uninstall
//     callbacks
//
// The plugin removes its navigation hook, stops observing lifecycle events,
// and unregisters its collectors when the application unmounts.
//
// Example:
//
//	r := plugin.New(opts,
//	    metrics.New(metrics.WithNamespace("myapp")),
//	)
func New(opts ...Option) plugin.Plugin {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	return plugin.Func(func(ctx *plugin.Context) {
		m := newCollectors(config)
		m.pluginsInstalled.Set(float64(plugin.InstalledCount(ctx.Router)))

		removeHook := ctx.Router.AfterEach(func(to, from *router.Route) {
			route := to.Name
			if route == "" {
				route = "unmatched"
			}
			m.navigationsTotal.WithLabelValues(route).Inc()
		})

		removeObserver := plugin.Observe(ctx.Router, func(ev plugin.Event) {
			switch ev.Type {
			case plugin.EventInstalled:
				m.pluginsInstalled.Set(float64(plugin.InstalledCount(ev.Router)))
			case plugin.EventFlushed:
				m.pendingFlushed.Add(float64(ev.Count))
			case plugin.EventUnmounted:
				m.uninstallsFired.Add(float64(ev.Count))
			}
		})

		ctx.OnUninstall(func() {
			removeHook()
			removeObserver()
			m.unregister(config.Registry)
		})
	})
}
