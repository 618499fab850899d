package starlark

import starlarkLib "go.starlark.net/starlark"

// value adapts a native Starlark value to the platform.Value contract.
type value struct {
	v starlarkLib.Value
}

func newValue(v starlarkLib.Value) value {
	if v == nil {
		v = starlarkLib.None
	}
	return value{v: v}
}

func (r value) Repr() string {
	return r.v.String()
}

func (r value) IsNone() bool {
	return r.v == starlarkLib.None
}

func (r value) Native() any {
	return r.v
}
