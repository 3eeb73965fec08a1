package quickfind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/host"
)

func TestManager_GetCreatesOnce(t *testing.T) {
	mgr := NewManager()
	doc := host.NewDocument("", "cat")

	a := mgr.Get("a", doc)
	require.Same(t, a, mgr.Get("a", doc))
	require.Equal(t, "a", a.ID())
	require.Equal(t, 1, mgr.Len())

	_, ok := mgr.Lookup("b")
	require.False(t, ok)
}

func TestManager_RemoveAndReset(t *testing.T) {
	mgr := NewManager(WithChecks(true))
	doc := host.NewDocument("", "cat cat")
	sess := mgr.Get("a", doc)
	cmd, _ := LookupCommand("add_all")
	sess.Execute(cmd, wrapFlags)
	require.Equal(t, Basic, sess.State())

	require.True(t, mgr.Reset("a"))
	require.Equal(t, NotInit, sess.State())
	require.False(t, mgr.Reset("missing"))

	require.True(t, mgr.Remove("a"))
	require.False(t, mgr.Remove("a"))
	require.Zero(t, mgr.Len())
}

func TestManager_Teardown(t *testing.T) {
	log := &recordingLogger{}
	mgr := NewManager(WithLogger(log))
	for _, id := range []string{"b", "a", "c"} {
		mgr.Get(id, host.NewDocument("", "x"))
	}
	require.Equal(t, []string{"a", "b", "c"}, mgr.IDs())

	var seen []string
	mgr.Teardown(func(s *Session) {
		seen = append(seen, s.ID())
	})
	require.Equal(t, []string{"a", "b", "c"}, seen)
	require.Zero(t, mgr.Len())
	require.Contains(t, log.debug, "[a] created session")
	require.Contains(t, log.debug, "[c] deleted session")
}

func TestManager_SessionsAreIndependent(t *testing.T) {
	mgr := NewManager()
	d1 := host.NewDocument("", "cat cat")
	d2 := host.NewDocument("", "dog")
	cmd, _ := LookupCommand("add_all")

	mgr.Get(d1.ID(), d1).Execute(cmd, wrapFlags)
	require.Equal(t, []span.Span{span.New(0, 3), span.New(4, 7)}, d1.Selections())

	s2 := mgr.Get(d2.ID(), d2)
	require.Equal(t, NotInit, s2.State())
	require.Equal(t, []span.Span{span.Point(0)}, d2.Selections())
}
