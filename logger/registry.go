package logger

import (
	"slices"
	"sync"
)

// components maps a component name to its logger. Unregistered names fall
// back to the global logger.
var components = struct {
	sync.RWMutex
	byName map[string]*Logger
}{byName: make(map[string]*Logger)}

// Register stores the logger used for a component, replacing any previous one.
func Register(name string, l *Logger) {
	components.Lock()
	defer components.Unlock()
	components.byName[name] = l
}

// Get returns the component's logger, or the global logger tagged with the
// component name when none is registered.
func Get(name string) *Logger {
	components.RLock()
	l, ok := components.byName[name]
	components.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers base.WithComponent(name) for every name. A nil
// base uses the global logger. Call it again after reconfiguring logging so
// components pick up the new level and output.
func RegisterDefaults(base *Logger, names ...string) {
	if base == nil {
		base = GetGlobalLogger()
	}
	components.Lock()
	defer components.Unlock()
	for _, name := range names {
		components.byName[name] = base.WithComponent(name)
	}
}

// Components returns the registered component names in sorted order.
func Components() []string {
	components.RLock()
	defer components.RUnlock()
	names := make([]string, 0, len(components.byName))
	for name := range components.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
