package risor

import "github.com/risor-io/risor/object"

// value adapts a native Risor object to the platform.Value contract.
type value struct {
	obj object.Object
}

func newValue(obj object.Object) value {
	return value{obj: obj}
}

func (r value) Repr() string {
	if r.obj == nil {
		return "nil"
	}
	return r.obj.Inspect()
}

func (r value) IsNone() bool {
	if r.obj == nil {
		return true
	}
	_, isNil := r.obj.(*object.NilType)
	return isNil
}

func (r value) Native() any {
	return r.obj
}
