package depot

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_Get(t *testing.T) {
	c := New()

	built := 0
	require.True(t, c.Register(Provider{
		Key: Name("logger"),
		Constructor: MustConstructor(func() *testLogger {
			built++
			return &testLogger{level: "lazy"}
		}),
	}))

	lazy := NewLazy[*testLogger](c, Name("logger"))
	assert.False(t, lazy.IsResolved())
	assert.Equal(t, 0, built)

	first, err := lazy.Get()
	require.NoError(t, err)
	assert.Equal(t, "lazy", first.level)
	assert.True(t, lazy.IsResolved())

	second, err := lazy.Get()
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, built)
}

func TestLazy_PerHolderOnServer(t *testing.T) {
	c := New(WithServerMode(true))
	registerBasics(t, c, true)

	type request struct {
		logger *Lazy[*testLogger]
	}

	a := request{logger: NewLazy[*testLogger](c, Name("logger"))}
	b := request{logger: NewLazy[*testLogger](c, Name("logger"))}

	assert.Same(t, a.logger.MustGet(), a.logger.MustGet())
	assert.NotSame(t, a.logger.MustGet(), b.logger.MustGet())
}

func TestLazy_NoContainer(t *testing.T) {
	lazy := NewLazy[*testLogger](nil, Name("logger"))

	_, err := lazy.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoContainerSentinel))
	assert.False(t, lazy.IsResolved())
	assert.Equal(t, "logger", lazy.Key().Name())
}

func TestLazy_ErrorIsNotCached(t *testing.T) {
	c := New()
	lazy := NewLazy[*testLogger](c, Name("logger"))

	_, err := lazy.Get()
	assert.True(t, errors.Is(err, ErrUnknownDependencySentinel))

	_, err = c.RegisterInstance(Name("logger"), &testLogger{level: "late"})
	require.NoError(t, err)

	logger, err := lazy.Get()
	require.NoError(t, err)
	assert.Equal(t, "late", logger.level)
}

func TestLazy_MustGetPanics(t *testing.T) {
	lazy := NewLazy[*testLogger](New(), Name("missing"))

	assert.Panics(t, func() {
		lazy.MustGet()
	})
}
