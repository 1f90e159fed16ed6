package routerplugin

import (
	"github.com/vango-dev/routerplugin/pkg/plugin"
	"github.com/vango-dev/routerplugin/pkg/router"
)

// Legacy aliases from the pre-1.0 API, kept so older integrations keep
// compiling. New code should use the current names.

// CreateRouter constructs a router with plugins installed in list order.
//
// Deprecated: use New.
func CreateRouter(opts router.Options, plugins ...Plugin) *router.Router {
	return plugin.New(opts, plugins...)
}

// DefinePlugin makes a plugin installable against either a router or an
// application.
//
// Deprecated: use Wrap.
func DefinePlugin(p Plugin) *Wrapped {
	return plugin.Wrap(p)
}

// UsePlugins installs plugins on an existing router in list order.
//
// Deprecated: use InstallAll.
func UsePlugins(r *router.Router, plugins ...Plugin) {
	plugin.InstallAll(r, plugins...)
}

// PluginFunc adapts a plain function to the Plugin interface.
//
// Deprecated: use Func.
type PluginFunc = plugin.Func
