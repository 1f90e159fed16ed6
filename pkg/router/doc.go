// Package router implements the minimal client-style router the plugin
// lifecycle coordinates against: route records with :param segments, a
// reactive current route, navigation guards, and a replaceable install hook
// that connects the router to an application.
//
// The install hook is deliberately a function value rather than a fixed
// method body. The plugin layer wraps it exactly once per router to observe
// attachment without the router knowing anything about plugins.
package router
