// Package lua runs quickfind scripts on an embedded Lua runtime.
//
// A script drives the application headlessly through the qf module, which
// is available both as the global qf and through require("qf"):
//
//	local id = qf.open("notes", "cat dog cat bird cat")
//	qf.select(0, 3)
//	local status, alert = qf.run("goto_next")
//	print(status)
//
// # State
//
// State wraps a gopher-lua state with a restricted standard library:
// base, table, string and math are opened; io, os and debug are not.
// dofile, loadfile and load are removed, require only resolves preloaded
// modules, and print writes to the configured output.
//
//	state := lua.NewState(lua.WithOutput(os.Stdout), lua.WithTimeout(time.Minute))
//	defer state.Close()
//
//	lua.Register(state, application)
//	if err := state.DoFile(ctx, "session.lua"); err != nil {
//	    log.Fatal(err)
//	}
//
// Execution honours the context passed to DoFile and DoString and the
// state timeout; a canceled script stops at its next instruction.
//
// # Module functions
//
//	open(name, text) -> id       load(path) -> id
//	activate(id)                 close(id)
//	select(start, end, ...)      add_selection(start, end)
//	selections() -> {{s, e}...}  status() -> string
//	run(command) -> status, alert
//	restart(command) -> status, alert
//	command(name)                edit(start, end, text)
//	save()                       save_flags()
//	flags() -> {case_sensitive, whole_word, wrap_scan}
//	commands() -> {name...}
//
// Errors raised by the application surface as Lua errors and abort the
// script unless caught with pcall.
package lua
