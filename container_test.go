package depot

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/go-utils/errs"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Test types shared by the package tests.
type testDatabase struct {
	dsn string
}

type testLogger struct {
	level string
}

type testUserService struct {
	db     *testDatabase
	logger *testLogger
}

func newTestDatabase() *testDatabase {
	return &testDatabase{dsn: "postgres://localhost/test"}
}

func newTestLogger() *testLogger {
	return &testLogger{level: "info"}
}

func newTestUserService(db *testDatabase, logger *testLogger) *testUserService {
	return &testUserService{db: db, logger: logger}
}

// newObservedContainer returns a container whose warnings are captured.
func newObservedContainer(opts ...Option) (*container, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	opts = append(opts, WithLogger(zap.New(core)))

	return newContainer(opts...), logs
}

func registerBasics(t *testing.T, c Depot, singleton bool) {
	t.Helper()

	require.True(t, c.Register(Provider{
		Key:         Name("db"),
		Constructor: MustConstructor(newTestDatabase),
		Singleton:   singleton,
	}))
	require.True(t, c.Register(Provider{
		Key:         Name("logger"),
		Constructor: MustConstructor(newTestLogger),
		Singleton:   singleton,
	}))
}

func TestNew(t *testing.T) {
	c := New()
	assert.NotNil(t, c)
	assert.False(t, c.IsServer())
	assert.Empty(t, c.Providers())
}

func TestNew_ServerMode(t *testing.T) {
	c := New(WithServerMode(true))
	assert.True(t, c.IsServer())
}

func TestHas_FalseUntilRegistered(t *testing.T) {
	c := New()

	assert.False(t, c.Has(Name("db")))

	ok := c.Register(Provider{Key: Name("db"), Constructor: MustConstructor(newTestDatabase)})
	require.True(t, ok)

	assert.True(t, c.Has(Name("db")))
	assert.True(t, c.Has(For("db")))
	assert.True(t, c.Has(NewKey("db")))
	assert.False(t, c.Has(Name("cache")))
}

func TestRegister_DuplicateKeepsFirst(t *testing.T) {
	c := New()

	first := MustConstructor(newTestDatabase)
	require.True(t, c.Register(Provider{Key: Name("db"), Constructor: first, Singleton: true}))

	ok := c.Register(Provider{
		Key:         NewKey("db"),
		Constructor: MustConstructor(newTestLogger),
		Requires:    []Identifier{Name("other")},
		Singleton:   false,
	})
	assert.False(t, ok)

	info := c.Inspect(Name("db"))
	assert.Equal(t, LifecycleSingleton, info.Lifecycle)
	assert.Equal(t, "*depot.testDatabase", info.Type)
	assert.Empty(t, info.Requires)

	db, err := c.Resolve(Name("db"))
	require.NoError(t, err)
	assert.IsType(t, &testDatabase{}, db)
}

func TestRegisterInstance_Success(t *testing.T) {
	c := New()
	instance := &testDatabase{dsn: "memory"}

	ok, err := c.RegisterInstance(Name("db"), instance)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, c.Has(Name("db")))

	for range 3 {
		got, err := c.Resolve(Name("db"))
		require.NoError(t, err)
		assert.Same(t, instance, got)
	}
}

func TestRegisterInstance_ServerModeReturnsSameInstance(t *testing.T) {
	c := New(WithServerMode(true))
	instance := map[string]any{"name": "config"}

	ok, err := c.RegisterInstance(Name("config"), instance)
	require.NoError(t, err)
	require.True(t, ok)

	first, err := c.Resolve(Name("config"))
	require.NoError(t, err)
	second, err := c.Resolve(Name("config"))
	require.NoError(t, err)

	first.(map[string]any)["touched"] = true
	assert.Equal(t, true, second.(map[string]any)["touched"])
}

func TestRegisterInstance_RejectsPrimitives(t *testing.T) {
	c := New()

	tests := []struct {
		name     string
		instance any
	}{
		{"int", 42},
		{"float", 3.14},
		{"string", "value"},
		{"bool", true},
		{"nil", nil},
		{"nil pointer", (*testLogger)(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := c.RegisterInstance(Name("primitive"), tt.instance)
			assert.False(t, ok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInstanceSentinel))
		})
	}

	assert.False(t, c.Has(Name("primitive")))
}

func TestRegisterInstance_AcceptsReferenceKinds(t *testing.T) {
	c := New()

	instances := map[string]any{
		"pointer": &testLogger{},
		"map":     map[string]int{},
		"slice":   []string{"a"},
		"func":    func() {},
		"struct":  testLogger{level: "debug"},
		"chan":    make(chan int),
	}

	for name, instance := range instances {
		ok, err := c.RegisterInstance(Name(name), instance)
		require.NoError(t, err, name)
		assert.True(t, ok, name)
	}
}

func TestRegisterInstance_Duplicate(t *testing.T) {
	c := New()
	first := &testLogger{level: "first"}

	ok, err := c.RegisterInstance(Name("logger"), first)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = c.RegisterInstance(Name("logger"), &testLogger{level: "second"})
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := c.Resolve(Name("logger"))
	require.NoError(t, err)
	assert.Same(t, first, got)
}

func TestRegisterInjection_ReturnsPositionPerTarget(t *testing.T) {
	c := New()
	users := MustConstructor(newTestUserService)
	other := MustConstructor(newTestDatabase)

	assert.Equal(t, 0, c.RegisterInjection(Injection{Target: users, Requires: Name("logger"), ParameterIndex: 1}))
	assert.Equal(t, 1, c.RegisterInjection(Injection{Target: users, Requires: Name("db"), ParameterIndex: 0}))
	assert.Equal(t, 0, c.RegisterInjection(Injection{Target: other, Requires: Name("x"), ParameterIndex: 0}))
}

func TestResolve_UnknownDependency(t *testing.T) {
	c := New()
	registerBasics(t, c, true)

	_, err := c.Resolve(Name("db"))
	require.NoError(t, err)

	_, err = c.Resolve(Name("missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownDependencySentinel))
	assert.Contains(t, err.Error(), "type 'missing' is not known and cannot be injected")

	var depErr *errs.Error
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, "missing", depErr.GetContext()["key"])
}

func TestResolve_SingletonClientReusesInstance(t *testing.T) {
	c := New()
	registerBasics(t, c, true)

	first, err := c.Resolve(Name("db"))
	require.NoError(t, err)

	for range 3 {
		got, err := c.Resolve(Name("db"))
		require.NoError(t, err)
		assert.Same(t, first, got)
	}
}

func TestResolve_SingletonServerBuildsEveryTime(t *testing.T) {
	c := New(WithServerMode(true))
	registerBasics(t, c, true)

	first, err := c.Resolve(Name("db"))
	require.NoError(t, err)
	second, err := c.Resolve(Name("db"))
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestResolve_TransientClientBuildsEveryTime(t *testing.T) {
	c := New()
	registerBasics(t, c, false)

	first, err := c.Resolve(Name("db"))
	require.NoError(t, err)
	second, err := c.Resolve(Name("db"))
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.True(t, c.Inspect(Name("db")).Cached)
}

func TestResolve_KeysCanonicalizeByName(t *testing.T) {
	c := New()

	ok := c.Register(Provider{
		Key:         NewKey("db"),
		Constructor: MustConstructor(newTestDatabase),
		Singleton:   true,
	})
	require.True(t, ok)

	viaHandle, err := c.Resolve(NewKey("db"))
	require.NoError(t, err)
	viaName, err := c.Resolve(Name("db"))
	require.NoError(t, err)
	viaInterned, err := c.Resolve(For("db"))
	require.NoError(t, err)

	assert.Same(t, viaHandle, viaName)
	assert.Same(t, viaHandle, viaInterned)
}

func TestResolveAll_PreservesOrder(t *testing.T) {
	c := New()
	registerBasics(t, c, true)

	instances, err := c.ResolveAll(Name("logger"), Name("db"), Name("logger"))
	require.NoError(t, err)
	require.Len(t, instances, 3)

	logger, err := c.Resolve(Name("logger"))
	require.NoError(t, err)
	db, err := c.Resolve(Name("db"))
	require.NoError(t, err)

	assert.Same(t, logger, instances[0])
	assert.Same(t, db, instances[1])
	assert.Same(t, logger, instances[2])
}

func TestResolveAll_Empty(t *testing.T) {
	c := New()

	instances, err := c.ResolveAll()
	require.NoError(t, err)
	assert.Empty(t, instances)
}

func TestResolveAll_StopsOnUnknown(t *testing.T) {
	c := New()
	registerBasics(t, c, true)

	instances, err := c.ResolveAll(Name("db"), Name("missing"), Name("logger"))
	assert.Nil(t, instances)
	assert.True(t, errors.Is(err, ErrUnknownDependencySentinel))
}

func TestResolve_ConcurrentReadsOfResolvedSingleton(t *testing.T) {
	c := New()
	registerBasics(t, c, true)

	first, err := c.Resolve(Name("db"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]any, 20)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			results[i], _ = c.Resolve(Name("db"))
		}(i)
	}

	wg.Wait()

	for _, got := range results {
		assert.Same(t, first, got)
	}
}

func TestProviders_SortedByName(t *testing.T) {
	c := New()
	registerBasics(t, c, true)

	_, err := c.RegisterInstance(Name("config"), &testLogger{})
	require.NoError(t, err)

	keys := c.Providers()
	require.Len(t, keys, 3)
	assert.Equal(t, "config", keys[0].Name())
	assert.Equal(t, "db", keys[1].Name())
	assert.Equal(t, "logger", keys[2].Name())
}
