package engine

import (
	"fmt"
	"sort"
)

// Extension is one fragment of editor configuration. Extensions are always
// pointers, so two fragments are equal only when they are the same value.
type Extension interface {
	extension()
}

type group struct {
	exts []Extension
}

func (*group) extension() {}

// Group bundles fragments into one. A nil fragment inside the group is a
// configuration error reported against the group's position.
func Group(exts ...Extension) Extension {
	return &group{exts: append([]Extension(nil), exts...)}
}

// SameExtensions reports whether two fragment lists hold the same fragments in
// the same order.
func SameExtensions(a, b []Extension) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Precedence orders fragments across the whole configuration. Values of
// higher precedence resolve after lower ones, so they win for facets that
// take the last value and are consulted first by keymaps.
type Precedence int

const (
	PrecLowest Precedence = iota - 2
	PrecLow
	PrecDefault
	PrecHigh
	PrecHighest
)

type prec struct {
	level Precedence
	ext   Extension
}

func (*prec) extension() {}

// Prec wraps ext so every value it contributes carries level.
func Prec(level Precedence, ext Extension) Extension {
	return &prec{level: level, ext: ext}
}

type config struct {
	source  []Extension
	facets  map[facetKey]any
	fields  []fieldKey
	plugins []*Plugin
}

type rankedValue struct {
	level Precedence
	value any
}

type flattener struct {
	seen    map[Extension]bool
	values  map[facetKey][]rankedValue
	order   []facetKey
	fields  []fieldKey
	plugins []*Plugin
}

func resolve(exts []Extension) (*config, error) {
	f := &flattener{
		seen:   make(map[Extension]bool),
		values: make(map[facetKey][]rankedValue),
	}
	for i, ext := range exts {
		if err := f.add(ext, i, 0, PrecDefault); err != nil {
			return nil, err
		}
	}
	cfg := &config{
		source:  append([]Extension(nil), exts...),
		facets:  make(map[facetKey]any, len(f.order)),
		fields:  f.fields,
		plugins: f.plugins,
	}
	for _, k := range f.order {
		ranked := f.values[k]
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].level < ranked[j].level })
		values := make([]any, len(ranked))
		for i, r := range ranked {
			values[i] = r.value
		}
		cfg.facets[k] = k.combineAny(values)
	}
	return cfg, nil
}

const maxExtensionDepth = 64

func (f *flattener) add(ext Extension, index, depth int, level Precedence) error {
	if ext == nil || isNilPointer(ext) {
		return &ConfigurationError{Index: index, Reason: "nil extension"}
	}
	if depth > maxExtensionDepth {
		return &ConfigurationError{Index: index, Reason: "extension nesting too deep"}
	}
	if f.seen[ext] {
		return nil
	}
	f.seen[ext] = true

	switch e := ext.(type) {
	case *group:
		for _, sub := range e.exts {
			if err := f.add(sub, index, depth+1, level); err != nil {
				return err
			}
		}
	case *prec:
		return f.add(e.ext, index, depth+1, e.level)
	case *facetValue:
		if _, ok := f.values[e.facet]; !ok {
			f.order = append(f.order, e.facet)
		}
		f.values[e.facet] = append(f.values[e.facet], rankedValue{level: level, value: e.value})
	case fieldKey:
		f.fields = append(f.fields, e)
		if p := e.provided(); p != nil {
			return f.add(p, index, depth+1, level)
		}
	case *Plugin:
		f.plugins = append(f.plugins, e)
		if e.provide != nil {
			return f.add(e.provide, index, depth+1, level)
		}
	default:
		return &ConfigurationError{Index: index, Reason: fmt.Sprintf("unsupported extension %T", ext)}
	}
	return nil
}

func isNilPointer(ext Extension) bool {
	switch e := ext.(type) {
	case *group:
		return e == nil
	case *prec:
		return e == nil
	case *facetValue:
		return e == nil
	case *Plugin:
		return e == nil
	case fieldKey:
		return e.isNil()
	}
	return false
}
