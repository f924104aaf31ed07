package system

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/jecs/internal/core/events/bus"
	"github.com/zeusync/jecs/internal/core/models"
	"github.com/zeusync/jecs/internal/core/models/interfaces"
	"github.com/zeusync/jecs/internal/core/observability/log"
)

func noop(*Context, *models.Entity, interfaces.ComponentBag) error { return nil }

func mustEntity(t *testing.T, e *Engine, name string, components ...string) *models.Entity {
	t.Helper()
	ent, err := e.Entity(name)
	require.NoError(t, err)
	for _, c := range components {
		require.NoError(t, ent.Tag(c))
	}
	return ent
}

func TestSignatureMatchingAndEdgeTrigger(t *testing.T) {
	e := NewEngine()
	fired := map[string]int{}
	require.NoError(t, e.System("controller-destroy", []string{"data", "destroy"}, func(c *Context, ent *models.Entity, bag interfaces.ComponentBag) error {
		fired[ent.Name()]++
		ent.DeleteComponent("destroy")
		return nil
	}))

	mustEntity(t, e, "only-data", "data")
	mustEntity(t, e, "both", "data", "destroy")

	require.NoError(t, e.Tick(context.Background()))
	require.NoError(t, e.Tick(context.Background()))

	assert.Equal(t, 0, fired["only-data"])
	assert.Equal(t, 1, fired["both"])
}

func TestSystemRemovingItsEntityDoesNotRefire(t *testing.T) {
	e := NewEngine()
	count := 0
	require.NoError(t, e.System("destroy", []string{"data", "destroy"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		count++
		c.Engine().RemoveEntity(ent.Name())
		return nil
	}))
	mustEntity(t, e, "x", "data", "destroy")

	require.NoError(t, e.Tick(context.Background()))
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 1, count)
	_, ok := e.GetEntity("x")
	assert.False(t, ok)
}

func TestSameTickVisibility(t *testing.T) {
	e := NewEngine()
	var seenByB []uint64
	require.NoError(t, e.System("A", []string{"data"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		return ent.Tag("T")
	}))
	require.NoError(t, e.System("B", []string{"data", "T"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		seenByB = append(seenByB, c.Tick())
		ent.DeleteComponent("T")
		return nil
	}))
	mustEntity(t, e, "X", "data")

	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []uint64{1}, seenByB)
}

func TestEarlierSystemDoesNotSeeLaterTagsUntilNextTick(t *testing.T) {
	e := NewEngine()
	var consumed []uint64
	require.NoError(t, e.System("consumer", []string{"data", "T"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		consumed = append(consumed, c.Tick())
		ent.DeleteComponent("T")
		return nil
	}))
	require.NoError(t, e.System("producer", []string{"data"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		if c.Tick() == 1 {
			return ent.Tag("T")
		}
		return nil
	}))
	mustEntity(t, e, "X", "data")

	require.NoError(t, e.Tick(context.Background()))
	assert.Empty(t, consumed)
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []uint64{2}, consumed)
}

func TestRemovalMidTickIsSafe(t *testing.T) {
	e := NewEngine()
	var later []string
	require.NoError(t, e.System("remover", []string{"data"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		// the first entity removes the one after it while the snapshot still holds it
		if ent.Name() == "a" {
			c.Engine().RemoveEntity("b")
		}
		return nil
	}))
	require.NoError(t, e.System("later", []string{"data"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		later = append(later, ent.Name())
		return nil
	}))
	mustEntity(t, e, "a", "data")
	mustEntity(t, e, "b", "data")
	mustEntity(t, e, "c", "data")

	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []string{"a", "c"}, later)

	m, ok := e.SystemMetrics("remover")
	require.True(t, ok)
	assert.Equal(t, 2, m.LastEntities)
}

func TestEntityLosingSignatureMidTurnIsSkipped(t *testing.T) {
	e := NewEngine()
	var fired []string
	require.NoError(t, e.System("s", []string{"data", "insert"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		fired = append(fired, ent.Name())
		if other, ok := c.Engine().GetEntity("b"); ok {
			other.DeleteComponent("insert")
		}
		return nil
	}))
	mustEntity(t, e, "a", "data", "insert")
	mustEntity(t, e, "b", "data", "insert")

	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []string{"a"}, fired)
}

func TestRecreatedEntityIsNotVisitedThroughStaleSnapshot(t *testing.T) {
	e := NewEngine()
	var seen []*models.Entity
	require.NoError(t, e.System("s", []string{"data"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		seen = append(seen, ent)
		if ent.Name() == "a" {
			c.Engine().RemoveEntity("b")
			fresh, err := c.Engine().Entity("b")
			if err != nil {
				return err
			}
			return fresh.Tag("data")
		}
		return nil
	}))
	mustEntity(t, e, "a", "data")
	stale := mustEntity(t, e, "b", "data")

	require.NoError(t, e.Tick(context.Background()))
	require.Len(t, seen, 1)
	assert.False(t, stale == seen[0])
}

func TestBagHoldsOnlySignature(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.System("s", []string{"data", "update"}, func(c *Context, ent *models.Entity, bag interfaces.ComponentBag) error {
		assert.Equal(t, []string{"data", "update"}, bag.Names())
		assert.True(t, bag.Has("data"))
		assert.False(t, bag.Has("extra"))
		v, ok := models.BagValue[int](bag, "data")
		assert.True(t, ok)
		assert.Equal(t, 42, v)
		return nil
	}))
	ent := mustEntity(t, e, "x", "update", "extra")
	require.NoError(t, ent.SetComponent("data", 42))
	require.NoError(t, e.Tick(context.Background()))
}

func TestSystemsRunInRegistrationOrder(t *testing.T) {
	e := NewEngine()
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, e.System(name, []string{"housekeeping"}, func(c *Context, _ *models.Entity, _ interfaces.ComponentBag) error {
			order = append(order, c.System())
			return nil
		}))
	}
	mustEntity(t, e, "single-step", "housekeeping")
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, order, e.Systems().GetExecutionOrder())
}

func TestFailFastAbortsTick(t *testing.T) {
	e := NewEngine()
	boom := errors.New("boom")
	afterRan := false
	hookRan := false
	require.NoError(t, e.System("bad", []string{"data"}, func(*Context, *models.Entity, interfaces.ComponentBag) error { return boom }))
	require.NoError(t, e.System("after", []string{"data"}, func(*Context, *models.Entity, interfaces.ComponentBag) error {
		afterRan = true
		return nil
	}))
	_, err := e.OnTick(EventTickAfter, func(TickEvent) error { hookRan = true; return nil })
	require.NoError(t, err)
	mustEntity(t, e, "x", "data")

	err = e.Tick(context.Background())
	require.ErrorIs(t, err, boom)
	var herr *HandlerError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, "bad", herr.System)
	assert.Equal(t, "x", herr.Entity)
	assert.False(t, afterRan)
	assert.False(t, hookRan)

	m, _ := e.SystemMetrics("bad")
	assert.EqualValues(t, 1, m.ErrorCount)
}

func TestIsolateContinuesAndReportsAll(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine(WithErrorPolicy(Isolate), WithLogger(log.FromZap(zap.New(core), log.LevelInfo)))
	boom := errors.New("boom")
	var after []string
	require.NoError(t, e.System("bad", []string{"data"}, func(*Context, *models.Entity, interfaces.ComponentBag) error { return boom }))
	require.NoError(t, e.System("after", []string{"data"}, func(_ *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		after = append(after, ent.Name())
		return nil
	}))
	mustEntity(t, e, "x", "data")
	mustEntity(t, e, "y", "data")

	err := e.Tick(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"x", "y"}, after)
	assert.Equal(t, 2, logs.FilterMessage("system handler failed").Len())
}

func TestReentrantTickIsRejected(t *testing.T) {
	e := NewEngine()
	var inner error
	require.NoError(t, e.System("s", []string{"data"}, func(c *Context, _ *models.Entity, _ interfaces.ComponentBag) error {
		inner = c.Engine().Tick(c.Context())
		return nil
	}))
	mustEntity(t, e, "x", "data")
	require.NoError(t, e.Tick(context.Background()))
	assert.ErrorIs(t, inner, ErrTickInProgress)
	assert.EqualValues(t, 1, e.Ticks())

	require.NoError(t, e.Tick(context.Background()))
	assert.EqualValues(t, 2, e.Ticks())
}

func TestLifecycleHooks(t *testing.T) {
	e := NewEngine()
	var events []string
	record := func(name string) bus.EventHandler {
		return func(ev bus.Event) error {
			events = append(events, name)
			return nil
		}
	}
	_, err := e.On(EventTickBefore, record("before"))
	require.NoError(t, err)
	_, err = e.On(EventTickAfter, record("after"))
	require.NoError(t, err)
	_, err = e.On(EventEntityCreated, func(ev bus.Event) error {
		events = append(events, "created:"+ev.Data().(EntityEvent).Entity.Name())
		return nil
	})
	require.NoError(t, err)
	_, err = e.On(EventEntityRemoved, func(ev bus.Event) error {
		events = append(events, "removed:"+ev.Data().(EntityEvent).Entity.Name())
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, e.System("s", []string{"destroy"}, func(c *Context, ent *models.Entity, _ interfaces.ComponentBag) error {
		events = append(events, "system")
		c.Engine().RemoveEntity(ent.Name())
		return nil
	}))

	mustEntity(t, e, "x", "destroy")
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, []string{"created:x", "before", "system", "removed:x", "after"}, events)
}

func TestBeforeHookErrorAbortsTick(t *testing.T) {
	e := NewEngine()
	ran := false
	stop := errors.New("stop")
	_, err := e.OnTick(EventTickBefore, func(te TickEvent) error {
		assert.Same(t, e, te.Engine)
		return stop
	})
	require.NoError(t, err)
	require.NoError(t, e.System("s", []string{"data"}, func(*Context, *models.Entity, interfaces.ComponentBag) error { ran = true; return nil }))
	mustEntity(t, e, "x", "data")

	assert.ErrorIs(t, e.Tick(context.Background()), stop)
	assert.False(t, ran)
}

func TestRegisterValidation(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.System("", []string{"data"}, noop), models.ErrInvalidName)
	assert.ErrorIs(t, e.System("s", nil, noop), ErrEmptySignature)
	assert.ErrorIs(t, e.System("s", []string{""}, noop), models.ErrInvalidName)
	assert.ErrorIs(t, e.System("s", []string{"data"}, nil), ErrNilHandler)
	assert.Zero(t, e.Systems().Len())
}

func TestDuplicateSystemNameIsAdvisory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine(WithLogger(log.FromZap(zap.New(core), log.LevelInfo)))
	require.NoError(t, e.System("counting", []string{"data"}, noop))
	require.NoError(t, e.System("counting", []string{"data"}, noop))

	assert.Equal(t, 2, e.Systems().Len())
	assert.Equal(t, 1, logs.FilterMessage("system name registered twice").Len())
	assert.ErrorIs(t, e.Systems().Validate(), ErrDuplicateSystemName)
}

func TestSignatureIsCopiedOnRegister(t *testing.T) {
	e := NewEngine()
	sig := []string{"data"}
	fired := 0
	require.NoError(t, e.System("s", sig, func(*Context, *models.Entity, interfaces.ComponentBag) error { fired++; return nil }))
	sig[0] = "other"
	mustEntity(t, e, "x", "data")
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 1, fired)
}

func TestResources(t *testing.T) {
	e := NewEngine()
	type counters struct{ total int }
	e.SetResource("app", &counters{})
	require.NoError(t, e.System("counting", []string{"data"}, func(c *Context, _ *models.Entity, _ interfaces.ComponentBag) error {
		app, ok := Resource[*counters](c.Engine(), "app")
		require.True(t, ok)
		app.total++
		return nil
	}))
	mustEntity(t, e, "a", "data")
	mustEntity(t, e, "b", "data")
	require.NoError(t, e.Tick(context.Background()))

	app, ok := Resource[*counters](e, "app")
	require.True(t, ok)
	assert.Equal(t, 2, app.total)

	_, ok = Resource[string](e, "app")
	assert.False(t, ok)
	e.RemoveResource("app")
	_, ok = e.GetResource("app")
	assert.False(t, ok)
}

func TestParseErrorPolicy(t *testing.T) {
	p, err := ParseErrorPolicy("isolate")
	require.NoError(t, err)
	assert.Equal(t, Isolate, p)
	assert.Equal(t, "isolate", p.String())

	p, err = ParseErrorPolicy("")
	require.NoError(t, err)
	assert.Equal(t, FailFast, p)

	_, err = ParseErrorPolicy("retry")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}
