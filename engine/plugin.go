package engine

// PluginValue is the per-view instance of a Plugin.
type PluginValue interface {
	Update(u Update)
	Destroy()
}

// Plugin is a view-bound extension with its own lifecycle. An instance is
// created when the plugin enters a view's configuration and destroyed when
// it leaves it or the view is destroyed.
type Plugin struct {
	create  func(v *View) PluginValue
	provide Extension
}

func (*Plugin) extension() {}

// DefinePlugin declares a plugin. provide contributes extra fragments
// alongside it and may be nil.
func DefinePlugin(create func(v *View) PluginValue, provide ...Extension) *Plugin {
	p := &Plugin{create: create}
	if len(provide) > 0 {
		p.provide = Group(provide...)
	}
	return p
}

// Instance returns the plugin's instance in v.
func (p *Plugin) Instance(v *View) (PluginValue, bool) {
	if v == nil {
		return nil, false
	}
	for _, inst := range v.plugins {
		if inst.plugin == p {
			return inst.value, true
		}
	}
	return nil, false
}

// PluginFuncs adapts plain functions to PluginValue.
type PluginFuncs struct {
	OnUpdate  func(u Update)
	OnDestroy func()
}

func (p PluginFuncs) Update(u Update) {
	if p.OnUpdate != nil {
		p.OnUpdate(u)
	}
}

func (p PluginFuncs) Destroy() {
	if p.OnDestroy != nil {
		p.OnDestroy()
	}
}

type pluginInstance struct {
	plugin *Plugin
	value  PluginValue
}
