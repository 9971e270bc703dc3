package engine

// FieldSpec describes a state field.
type FieldSpec[T any] struct {
	// Create builds the initial value. It runs for new states and when a
	// reconfiguration introduces the field.
	Create func(s *State) T
	// Update derives the next value. Nil keeps the value unchanged.
	Update func(value T, tr *Transaction) T
	// Provide contributes extra fragments derived from the field.
	Provide func(f *Field[T]) Extension
}

// Field is a piece of state stored alongside the document. A field value
// survives reconfiguration as long as the field stays in the configuration.
type Field[T any] struct {
	create  func(*State) T
	update  func(T, *Transaction) T
	provide Extension
}

type fieldKey interface {
	Extension
	createAny(s *State) any
	updateAny(v any, tr *Transaction) any
	provided() Extension
	isNil() bool
}

// DefineField declares a field.
func DefineField[T any](spec FieldSpec[T]) *Field[T] {
	f := &Field[T]{create: spec.Create, update: spec.Update}
	if spec.Provide != nil {
		f.provide = spec.Provide(f)
	}
	return f
}

func (*Field[T]) extension() {}

// Get returns the field's value and whether the field is configured in s.
func (f *Field[T]) Get(s *State) (T, bool) {
	if s != nil {
		if v, ok := s.fields[f]; ok {
			return v.(T), true
		}
	}
	var zero T
	return zero, false
}

// Value returns the field's value, or the zero value when absent.
func (f *Field[T]) Value(s *State) T {
	v, _ := f.Get(s)
	return v
}

func (f *Field[T]) createAny(s *State) any {
	if f.create == nil {
		var zero T
		return zero
	}
	return f.create(s)
}

func (f *Field[T]) updateAny(v any, tr *Transaction) any {
	if f.update == nil {
		return v
	}
	return f.update(v.(T), tr)
}

func (f *Field[T]) provided() Extension { return f.provide }

func (f *Field[T]) isNil() bool { return f == nil }
