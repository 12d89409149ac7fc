package extension

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/opd-ai/orion/events"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFilter struct {
	name     string
	failInit bool
	closeErr error
	closed   bool
	seen     int
}

func (c *chatFilter) Name() string { return c.name }

func (c *chatFilter) Initialize(k *events.Kernel, owner string) error {
	events.On(k, owner, events.Normal, func(e *events.ChatEvent) error {
		c.seen++
		e.Cancel("filtered")
		return nil
	})
	events.On(k, owner, events.Monitor, func(e *events.SessionCloseEvent) error {
		return nil
	})
	if c.failInit {
		return errors.New("missing word list")
	}
	return nil
}

func (c *chatFilter) Close() error {
	c.closed = true
	return c.closeErr
}

func newLoader(t *testing.T) (*Loader, *events.Kernel) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	k := events.NewKernel(events.WithLogger(logger))
	return NewLoader(k, logger), k
}

func TestLoadAndUnload(t *testing.T) {
	l, k := newLoader(t)

	var loads, unloads []string
	events.On(k, "host", events.Monitor, func(e *events.ExtensionLoadEvent) error {
		loads = append(loads, e.Name)
		return nil
	})
	events.On(k, "host", events.Monitor, func(e *events.ExtensionUnloadEvent) error {
		unloads = append(unloads, e.Name)
		assert.Equal(t, 2, e.Removed)
		return nil
	})

	ext := &chatFilter{name: "filter"}
	require.NoError(t, l.Load(ext))
	assert.Equal(t, []string{"filter"}, l.Loaded())
	assert.Equal(t, []string{"filter"}, loads)
	assert.Contains(t, k.Owners(), Owner("filter"))

	chat := &events.ChatEvent{}
	k.Raise(chat)
	assert.True(t, chat.IsCanceled())
	assert.Equal(t, 1, ext.seen)

	require.NoError(t, l.Unload("filter"))
	assert.True(t, ext.closed)
	assert.Empty(t, l.Loaded())
	assert.Equal(t, []string{"filter"}, unloads)
	assert.Equal(t, []string{"host"}, k.Owners())

	chat = &events.ChatEvent{}
	k.Raise(chat)
	assert.False(t, chat.IsCanceled())
	assert.Equal(t, 1, ext.seen)
}

func TestLoadDuplicate(t *testing.T) {
	l, k := newLoader(t)
	require.NoError(t, l.Load(&chatFilter{name: "filter"}))

	err := l.Load(&chatFilter{name: "filter"})
	assert.ErrorIs(t, err, ErrAlreadyLoaded)
	assert.Equal(t, 1, k.Handlers(reflect.TypeFor[*events.ChatEvent]()), "the duplicate registered nothing")
}

func TestLoadEmptyName(t *testing.T) {
	l, _ := newLoader(t)
	assert.ErrorIs(t, l.Load(&chatFilter{}), ErrInvalidName)
}

func TestLoadFailureRollsBack(t *testing.T) {
	l, k := newLoader(t)

	err := l.Load(&chatFilter{name: "broken", failInit: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing word list")
	assert.Empty(t, l.Loaded())
	assert.Empty(t, k.Owners())
	assert.Equal(t, 0, k.Handlers(reflect.TypeFor[*events.ChatEvent]()))

	// The name is free again after a failed load.
	require.NoError(t, l.Load(&chatFilter{name: "broken"}))
}

func TestUnloadUnknown(t *testing.T) {
	l, _ := newLoader(t)
	assert.ErrorIs(t, l.Unload("ghost"), ErrNotLoaded)
}

func TestUnloadCloseError(t *testing.T) {
	l, k := newLoader(t)
	ext := &chatFilter{name: "filter", closeErr: errors.New("flush failed")}
	require.NoError(t, l.Load(ext))

	err := l.Unload("filter")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flush failed")
	assert.Empty(t, l.Loaded(), "the extension is unloaded even when Close fails")
	assert.Empty(t, k.Owners())
}

func TestUnloadAll(t *testing.T) {
	l, k := newLoader(t)

	var order []string
	events.On(k, "host", events.Monitor, func(e *events.ExtensionUnloadEvent) error {
		order = append(order, e.Name)
		return nil
	})

	a := &chatFilter{name: "a"}
	b := &chatFilter{name: "b", closeErr: errors.New("b close")}
	c := &chatFilter{name: "c"}
	for _, ext := range []*chatFilter{b, c, a} {
		require.NoError(t, l.Load(ext))
	}
	assert.Equal(t, []string{"a", "b", "c"}, l.Loaded())

	err := l.UnloadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b close")
	assert.Equal(t, []string{"c", "b", "a"}, order)
	assert.Empty(t, l.Loaded())
	assert.True(t, a.closed && b.closed && c.closed)
	assert.Equal(t, []string{"host"}, k.Owners())
}

// nested loads a dependency and inspects the loader from Initialize.
type nested struct {
	l          *Loader
	dependency Extension
	seen       []string
}

func (n *nested) Name() string { return "nested" }

func (n *nested) Initialize(k *events.Kernel, owner string) error {
	n.seen = n.l.Loaded()
	if err := n.l.Load(n.dependency); err != nil {
		return err
	}
	// A second Load of the name being initialized is refused, not deadlocked.
	if err := n.l.Load(&chatFilter{name: "nested"}); !errors.Is(err, ErrAlreadyLoaded) {
		return fmt.Errorf("reload during initialize: %v", err)
	}
	return nil
}

func TestInitializeMayCallLoader(t *testing.T) {
	l, _ := newLoader(t)
	require.NoError(t, l.Load(&chatFilter{name: "base"}))

	ext := &nested{l: l, dependency: &chatFilter{name: "dep"}}
	done := make(chan error, 1)
	go func() { done <- l.Load(ext) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Load blocked while Initialize called back into the Loader")
	}
	assert.Equal(t, []string{"base"}, ext.seen, "a name is not listed until Initialize returns")
	assert.Equal(t, []string{"base", "dep", "nested"}, l.Loaded())
	assert.ErrorIs(t, l.Unload("missing"), ErrNotLoaded)
}
