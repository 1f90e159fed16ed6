package plugin

// Plugin customizes a router instance at install time.
// Setup runs exactly once per install, synchronously, inside the router's
// shared effect scope. Everything a plugin does is mediated through the
// Context it receives.
type Plugin interface {
	Setup(ctx *Context)
}

// Func adapts a plain function to the Plugin interface.
//
//	r := plugin.New(opts, plugin.Func(func(ctx *plugin.Context) {
//	    ctx.Router.AfterEach(logNavigation)
//	}))
type Func func(ctx *Context)

// Setup implements Plugin.
func (f Func) Setup(ctx *Context) {
	f(ctx)
}
