// Package decorator wraps methods to inject cross-cutting behavior before and after their
// invocation, without changing their signature or their identity.
//
// A Method pairs a callable with the name and documentation it was declared with. Every decorator
// in this package accepts a Method and returns a new Method that carries the same name and
// documentation, so that logs, metrics, and introspection report the original method rather than
// the wrapper. Decorators are transparent to failure: an error returned by the wrapped callable is
// handed back to the caller as-is, and a panic unwinds through the wrapper untouched.
package decorator
