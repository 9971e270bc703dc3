package engine

// Effect is a typed side-channel value carried by a transaction.
type Effect struct {
	typ   any
	value any
}

// EffectType declares a kind of effect.
type EffectType[T any] struct {
	name string
}

func DefineEffect[T any](name string) *EffectType[T] {
	return &EffectType[T]{name: name}
}

func (e *EffectType[T]) Name() string { return e.name }

func (e *EffectType[T]) Of(v T) Effect { return Effect{typ: e, value: v} }

// Is reports whether ef has this type.
func (e *EffectType[T]) Is(ef Effect) bool { return ef.typ == any(e) }

// Value unwraps ef when it has this type.
func (e *EffectType[T]) Value(ef Effect) (T, bool) {
	if !e.Is(ef) {
		var zero T
		return zero, false
	}
	return ef.value.(T), true
}

// In returns the values of every effect of this type in tr, in order.
func (e *EffectType[T]) In(tr *Transaction) []T {
	if tr == nil {
		return nil
	}
	var out []T
	for _, ef := range tr.Effects {
		if v, ok := e.Value(ef); ok {
			out = append(out, v)
		}
	}
	return out
}

var reconfigureEffect = DefineEffect[[]Extension]("reconfigure")

// Reconfigure replaces the whole configuration. Field values and plugin
// instances whose fragments are still present carry over.
func Reconfigure(exts ...Extension) Effect {
	return reconfigureEffect.Of(append([]Extension(nil), exts...))
}

// Annotation is metadata attached to a transaction.
type Annotation struct {
	typ   any
	value any
}

// AnnotationType declares a kind of annotation.
type AnnotationType[T any] struct {
	name string
}

func DefineAnnotation[T any](name string) *AnnotationType[T] {
	return &AnnotationType[T]{name: name}
}

func (a *AnnotationType[T]) Of(v T) Annotation { return Annotation{typ: a, value: v} }

// Get returns the last annotation of this type on tr.
func (a *AnnotationType[T]) Get(tr *Transaction) (T, bool) {
	var zero T
	if tr == nil {
		return zero, false
	}
	for i := len(tr.annotations) - 1; i >= 0; i-- {
		if tr.annotations[i].typ == any(a) {
			return tr.annotations[i].value.(T), true
		}
	}
	return zero, false
}

// AddToHistory set to false keeps a transaction out of undo history.
var AddToHistory = DefineAnnotation[bool]("addToHistory")
