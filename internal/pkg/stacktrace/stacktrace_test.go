package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/gomart/internal/cart/usecase.(*Usecase).Increment(...)
	/src/gomart/internal/cart/usecase/quantity.go:41 +0x1d
main.main()
	/src/gomart/main.go:12 +0x25
`)

	assert.Equal(t, []string{"internal/cart/usecase/quantity.go:41"}, InternalPaths(stack))
	assert.Empty(t, InternalPaths(nil))
}
