package decorator

// Func is the signature of any callable that can be decorated. Callables that take no arguments
// or return no value use struct{} for A or R.
type Func[A any, R any] func(args A) (R, error)

// Method is a callable annotated with the identity it was declared with.
type Method[A any, R any] struct {
	// Name is the declared name of the method.
	Name string

	// Doc is a human-readable description of what the method does.
	Doc string

	fn Func[A, R]
}

// NewMethod annotates fn with a name and documentation string.
func NewMethod[A any, R any](name string, doc string, fn Func[A, R]) Method[A, R] {
	return Method[A, R]{
		Name: name,
		Doc:  doc,
		fn:   fn,
	}
}

// Invoke calls the underlying callable with args and returns its result.
func (m Method[A, R]) Invoke(args A) (R, error) {
	return m.fn(args)
}

// String returns the method's declared name.
func (m Method[A, R]) String() string {
	return m.Name
}

// wrap creates a Method with the same identity as m, backed by fn.
func (m Method[A, R]) wrap(fn Func[A, R]) Method[A, R] {
	return NewMethod(m.Name, m.Doc, fn)
}
