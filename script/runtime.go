package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/questcore/command"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("pkg", "script")

var ErrNotCompiled = errors.New("script: runtime not compiled")

// Handlers a quest script may define. Each one is called as
// handler(engine, state, args).
var Handlers = []string{"on_command", "on_switch", "on_customized", "on_error", "on_map_event"}

// Runtime runs one quest script. Top-level code runs again on every
// dispatch, so scripts keep data across events in the state map.
type Runtime struct {
	Name string
	// Declared lists the custom commands the quest declares.
	Declared []string

	compiled *tengo.Compiled
	defined  map[string]bool
	state    *tengo.Map
	engine   *tengo.ImmutableMap
	commands *command.Commands

	running bool
	queue   []queued
}

type queued struct {
	event string
	args  map[string]any
}

// New compiles src and resolves which handlers it defines.
func New(name string, src []byte) (*Runtime, error) {
	r := &Runtime{
		Name:    name,
		defined: map[string]bool{},
		state:   &tengo.Map{Value: map[string]tengo.Object{}},
	}
	r.engine = r.buildEngine()

	probe, err := compile(src, "")
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	if err := probe.Run(); err != nil {
		return nil, fmt.Errorf("script: run %s: %w", name, err)
	}
	for _, h := range Handlers {
		if probe.IsDefined(h) {
			r.defined[h] = true
		}
	}

	r.compiled, err = compile(src, dispatchTrailer(r.defined))
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return r, nil
}

func compile(src []byte, trailer string) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + trailer))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__args", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func dispatchTrailer(defined map[string]bool) string {
	var b strings.Builder
	first := true
	for _, h := range Handlers {
		if !defined[h] {
			continue
		}
		if first {
			b.WriteString("if ")
			first = false
		} else {
			b.WriteString(" else if ")
		}
		fmt.Fprintf(&b, "__event == %q {\n\t%s(__engine, __state, __args)\n}", h, h)
	}
	b.WriteString("\n")
	return b.String()
}

// Handles reports whether the script defines handler.
func (r *Runtime) Handles(handler string) bool {
	return r != nil && r.defined[handler]
}

// SetCommands attaches the commands the script queries and rebinds.
func (r *Runtime) SetCommands(c *command.Commands) { r.commands = c }

func (r *Runtime) Commands() *command.Commands { return r.commands }

// Dispatch calls the handler named event with args. Events dispatched while a
// handler runs are queued and run once it returns.
func (r *Runtime) Dispatch(event string, args map[string]any) error {
	if r == nil || r.compiled == nil {
		return ErrNotCompiled
	}
	if !r.defined[event] {
		return nil
	}
	if r.running {
		r.queue = append(r.queue, queued{event: event, args: args})
		return nil
	}

	r.running = true
	defer func() { r.running = false }()

	var errs []error
	if err := r.run(event, args); err != nil {
		errs = append(errs, err)
	}
	for len(r.queue) > 0 {
		next := r.queue[0]
		r.queue = r.queue[1:]
		if err := r.run(next.event, next.args); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runtime) run(event string, args map[string]any) error {
	obj, err := tengo.FromInterface(args)
	if err != nil {
		return fmt.Errorf("script: %s args: %w", event, err)
	}
	if err := r.compiled.Set("__event", event); err != nil {
		return err
	}
	if err := r.compiled.Set("__engine", r.engine); err != nil {
		return err
	}
	if err := r.compiled.Set("__state", r.state); err != nil {
		return err
	}
	if err := r.compiled.Set("__args", obj); err != nil {
		return err
	}
	if err := r.compiled.Run(); err != nil {
		return fmt.Errorf("script: %s %s: %w", r.Name, event, err)
	}
	return nil
}

// State returns a copy of the script state map.
func (r *Runtime) State() map[string]any {
	out, _ := objectToAny(r.state).(map[string]any)
	return out
}

// NotifyCommand forwards a control event to on_command.
func (r *Runtime) NotifyCommand(ev command.ControlEvent) {
	args := map[string]any{"action": ev.Kind.String()}
	if ev.Kind == command.AxisChanged {
		args["axis"] = ev.Axis.String()
		args["state"] = ev.State
	} else {
		args["command"] = ev.Command.String()
	}
	r.logError("on_command", r.Dispatch("on_command", args))
}

// ReportError forwards an engine error to on_error.
func (r *Runtime) ReportError(err error) {
	if err == nil {
		return
	}
	r.logError("on_error", r.Dispatch("on_error", map[string]any{"message": err.Error()}))
}

func (r *Runtime) logError(event string, err error) {
	if err == nil {
		return
	}
	log.WithFields(logrus.Fields{
		"script": r.Name,
		"event":  event,
	}).WithError(err).Error("script handler failed")
}
