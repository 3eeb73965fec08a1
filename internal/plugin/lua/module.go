package lua

import (
	"context"

	"github.com/dshills/quickfind/internal/app"
	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/host"
	lua "github.com/yuin/gopher-lua"
)

// ModuleName is the global and require name of the scripting module.
const ModuleName = "qf"

// Editor is the application surface scripts drive.
// *app.Application implements it.
type Editor interface {
	Open(ctx context.Context, path string) (*host.Document, error)
	OpenText(ctx context.Context, name, text string) (*host.Document, error)
	Activate(ctx context.Context, id string) error
	Close(ctx context.Context, id string) error
	Execute(ctx context.Context, name string) error
	Restart(ctx context.Context, name string) error
	Edit(ctx context.Context, start, end int, text string) error
	SaveFlags() error
	LastAlert() string
	Lock(fn func())
	Documents() *host.Manager
	Config() *config.Store
}

var _ Editor = (*app.Application)(nil)

// Register installs the qf module on s as a global and for require.
func Register(s *State, ed Editor) {
	loader := Loader(ed)
	s.PreloadModule(ModuleName, loader)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if err := s.L.CallByParam(lua.P{Fn: s.L.NewFunction(loader), NRet: 1, Protect: true}); err != nil {
		return
	}
	mod := s.L.Get(-1)
	s.L.Pop(1)
	s.L.SetGlobal(ModuleName, mod)
}

// Loader returns the module loader for ed.
func Loader(ed Editor) lua.LGFunction {
	m := &module{ed: ed}
	return func(L *lua.LState) int {
		mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
			"open":          m.open,
			"load":          m.load,
			"activate":      m.activate,
			"close":         m.close,
			"select":        m.selectSpans,
			"add_selection": m.addSelection,
			"selections":    m.selections,
			"status":        m.status,
			"run":           m.run,
			"restart":       m.restart,
			"command":       m.command,
			"edit":          m.edit,
			"save":          m.save,
			"save_flags":    m.saveFlags,
			"flags":         m.flags,
			"commands":      m.commands,
		})
		L.Push(mod)
		return 1
	}
}

type module struct {
	ed Editor
}

// contextOf returns the context the running script was started with.
func contextOf(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func raise(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

func (m *module) open(L *lua.LState) int {
	doc, err := m.ed.OpenText(contextOf(L), L.CheckString(1), L.OptString(2, ""))
	raise(L, err)
	L.Push(lua.LString(doc.ID()))
	return 1
}

func (m *module) load(L *lua.LState) int {
	doc, err := m.ed.Open(contextOf(L), L.CheckString(1))
	raise(L, err)
	L.Push(lua.LString(doc.ID()))
	return 1
}

func (m *module) activate(L *lua.LState) int {
	raise(L, m.ed.Activate(contextOf(L), L.CheckString(1)))
	return 0
}

func (m *module) close(L *lua.LState) int {
	raise(L, m.ed.Close(contextOf(L), L.CheckString(1)))
	return 0
}

// withActive runs fn on the active document with the application lock held.
func (m *module) withActive(L *lua.LState, fn func(doc *host.Document) error) {
	var err error
	m.ed.Lock(func() {
		doc := m.ed.Documents().Active()
		if doc == nil {
			err = ErrNoActiveDocument
			return
		}
		err = fn(doc)
	})
	raise(L, err)
}

func (m *module) selectSpans(L *lua.LState) int {
	spans := checkSpans(L, 1)
	m.withActive(L, func(doc *host.Document) error {
		return doc.SetSelections(spans)
	})
	return 0
}

func (m *module) addSelection(L *lua.LState) int {
	s := span.New(L.CheckInt(1), L.CheckInt(2))
	m.withActive(L, func(doc *host.Document) error {
		doc.AddSelection(s)
		return nil
	})
	return 0
}

func (m *module) selections(L *lua.LState) int {
	var spans []span.Span
	m.withActive(L, func(doc *host.Document) error {
		spans = doc.Selections()
		return nil
	})
	L.Push(spansToTable(L, spans))
	return 1
}

func (m *module) status(L *lua.LState) int {
	L.Push(lua.LString(m.activeStatus(L)))
	return 1
}

func (m *module) activeStatus(L *lua.LState) string {
	var status string
	m.withActive(L, func(doc *host.Document) error {
		status = doc.Status()
		return nil
	})
	return status
}

// pushResult pushes the active status and the last alert.
func (m *module) pushResult(L *lua.LState) int {
	L.Push(lua.LString(m.activeStatus(L)))
	L.Push(lua.LString(m.ed.LastAlert()))
	return 2
}

func (m *module) run(L *lua.LState) int {
	raise(L, m.ed.Execute(contextOf(L), L.CheckString(1)))
	return m.pushResult(L)
}

func (m *module) restart(L *lua.LState) int {
	raise(L, m.ed.Restart(contextOf(L), L.CheckString(1)))
	return m.pushResult(L)
}

func (m *module) command(L *lua.LState) int {
	raise(L, m.ed.Execute(contextOf(L), L.CheckString(1)))
	return 0
}

func (m *module) edit(L *lua.LState) int {
	raise(L, m.ed.Edit(contextOf(L), L.CheckInt(1), L.CheckInt(2), L.CheckString(3)))
	return 0
}

func (m *module) save(L *lua.LState) int {
	raise(L, m.ed.Execute(contextOf(L), app.CmdSave))
	return 0
}

func (m *module) saveFlags(L *lua.LState) int {
	raise(L, m.ed.SaveFlags())
	return 0
}

func (m *module) flags(L *lua.LState) int {
	L.Push(flagsToTable(L, m.ed.Config().Flags()))
	return 1
}

func (m *module) commands(L *lua.LState) int {
	L.Push(stringsToTable(L, app.CommandNames()))
	return 1
}
