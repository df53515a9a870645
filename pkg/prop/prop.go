// Package prop provides memoizing, type-checked wrappers around zero-argument
// computations. Components bind these as named props so templates can
// reference derived values; the wrappers are independent of any component
// type and usable on their own.
package prop

// Compute is the underlying zero-argument computation a prop wraps.
type Compute func() (any, error)

// Validator checks a computed value against a declared contract. A nil
// validator accepts every value.
type Validator func(any) error

// Value is the read side of a prop. Implementations decide whether Get is
// cached and whether the result is validated.
type Value interface {
	Get() (any, error)
}

type lazyValue struct {
	compute  Compute
	validate Validator

	done   bool
	cached any
	err    error
}

// Lazy wraps compute into a cached, validated accessor. The computation runs
// exactly once, on first Get; the result is checked by validate before it is
// cached. A computation error or validation failure is terminal: every later
// Get returns the same error without re-running the computation.
//
// Lazy values are not safe for concurrent use; each belongs to a single
// component instance.
func Lazy(compute Compute, validate Validator) Value {
	return &lazyValue{compute: compute, validate: validate}
}

func (v *lazyValue) Get() (any, error) {
	if v.done {
		return v.cached, v.err
	}
	v.done = true

	value, err := v.compute()
	if err != nil {
		v.err = err
		return nil, v.err
	}
	if v.validate != nil {
		if err := v.validate(value); err != nil {
			v.err = err
			return nil, v.err
		}
	}
	v.cached = value
	return v.cached, nil
}

type plainValue struct {
	compute Compute
}

// Plain wraps compute into an accessor that re-runs the computation on every
// Get. No caching, no validation.
func Plain(compute Compute) Value {
	return plainValue{compute: compute}
}

func (v plainValue) Get() (any, error) {
	return v.compute()
}
