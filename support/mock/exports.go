package mock

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type Exporter interface {
	Exports() []interface{}
}

// CheckActorExports checks that every exported method has the signature the VM dispatches to.
func CheckActorExports(t *testing.T, act Exporter) {
	for i, m := range act.Exports() {
		if i == 0 { // Send is implicit
			assert.Nil(t, m, "method 0 is reserved for send")
			continue
		}
		if m == nil {
			continue
		}
		meth := reflect.ValueOf(m).Type()
		assert.Equal(t, reflect.Func, meth.Kind(), "export %d is not a function", i)
		if meth.Kind() != reflect.Func {
			continue
		}
		assert.Equal(t, 2, meth.NumIn(), "export %d must take a runtime and params", i)
		assert.Equal(t, typeOfRuntimeInterface, meth.In(0), "export %d first parameter must be the runtime", i)
		assert.True(t, meth.In(1).Kind() == reflect.Ptr && meth.In(1).Implements(typeOfCborUnmarshaler),
			"export %d params must be a pointer to a CBOR unmarshaler", i)
		assert.Equal(t, 1, meth.NumOut(), "export %d must return a single value", i)
		assert.True(t, meth.Out(0).Implements(typeOfCborMarshaler), "export %d must return a CBOR marshaler", i)
	}
}
