package fn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllTriConsumer(t *testing.T) {
	t.Run("it should call all consumers in order", func(t *testing.T) {
		// GIVEN
		var calls []string
		first := func(a string, b int, c bool) { calls = append(calls, "first:"+a) }
		second := func(a string, b int, c bool) { calls = append(calls, "second:"+a) }

		// WHEN
		AllTriConsumer[string, int, bool](first, second)("foo", 1, true)

		// THEN
		assert.Equal(t, []string{"first:foo", "second:foo"}, calls)
	})

	t.Run("it should accept no consumer", func(t *testing.T) {
		// GIVEN
		consumer := AllTriConsumer[string, int, bool]()

		// WHEN / THEN
		assert.NotPanics(t, func() { consumer("foo", 1, true) })
	})
}
