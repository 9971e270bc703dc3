package engine

// Facet collects values contributed by fragments and combines them into one
// output, resolved once per configuration.
type Facet[In, Out any] struct {
	name    string
	combine func(values []In) Out
}

type facetKey interface {
	combineAny(values []any) any
}

type facetValue struct {
	facet facetKey
	value any
}

func (*facetValue) extension() {}

// DefineFacet declares a facet. combine receives the contributed values in
// fragment order and must accept an empty slice.
func DefineFacet[In, Out any](name string, combine func(values []In) Out) *Facet[In, Out] {
	return &Facet[In, Out]{name: name, combine: combine}
}

func (f *Facet[In, Out]) Name() string { return f.name }

// Of returns a fresh fragment contributing v.
func (f *Facet[In, Out]) Of(v In) Extension {
	return &facetValue{facet: f, value: v}
}

// Get returns the combined value of f in s.
func (f *Facet[In, Out]) Get(s *State) Out {
	if s != nil && s.config != nil {
		if v, ok := s.config.facets[f]; ok {
			return v.(Out)
		}
	}
	return f.combine(nil)
}

func (f *Facet[In, Out]) combineAny(values []any) any {
	in := make([]In, len(values))
	for i, v := range values {
		in[i] = v.(In)
	}
	return f.combine(in)
}

// Last combines to the last contributed value, or def when none.
func Last[T any](def T) func([]T) T {
	return func(values []T) T {
		if len(values) == 0 {
			return def
		}
		return values[len(values)-1]
	}
}

// All combines to every contributed value in fragment order.
func All[T any]() func([]T) []T {
	return func(values []T) []T {
		return append([]T(nil), values...)
	}
}

// Any combines to true when any contributed value is true.
func Any(values []bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
