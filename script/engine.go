package script

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/questcore/command"
	"github.com/milk9111/questcore/ecs"
	"github.com/milk9111/questcore/entity"
	"github.com/sirupsen/logrus"
)

func (r *Runtime) buildEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["is_pressed"] = &tengo.UserFunction{Name: "is_pressed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd, ok := r.commandArg(args)
		if !ok || !r.commands.IsCommandPressed(cmd) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["axis_state"] = &tengo.UserFunction{Name: "axis_state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if r.commands == nil || len(args) < 1 {
			return &tengo.Float{Value: 0}, nil
		}
		axis, err := command.ParseAxis(objectAsString(args[0]), r.Declared...)
		if err != nil {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: r.commands.CommandAxisState(axis)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.WithField("script", r.Name).Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["customize"] = &tengo.UserFunction{Name: "customize", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd, ok := r.commandArg(args)
		if !ok {
			return tengo.FalseValue, nil
		}
		r.commands.Customize(cmd, func(cmd command.Command, done bool) {
			r.logError("on_customized", r.Dispatch("on_customized", map[string]any{
				"command": cmd.String(),
				"ok":      done,
				"key":     r.commands.KeyboardBinding(cmd).String(),
				"joypad":  r.commands.JoypadBinding(cmd).String(),
			}))
		})
		return tengo.TrueValue, nil
	}}

	values["is_customizing"] = &tengo.UserFunction{Name: "is_customizing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if r.commands == nil || !r.commands.IsCustomizing() {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["binding"] = &tengo.UserFunction{Name: "binding", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd, ok := r.commandArg(args)
		if !ok {
			return &tengo.String{Value: ""}, nil
		}
		return &tengo.String{Value: r.commands.KeyboardBinding(cmd).String()}, nil
	}}

	values["set_binding"] = &tengo.UserFunction{Name: "set_binding", Value: func(args ...tengo.Object) (tengo.Object, error) {
		cmd, ok := r.commandArg(args)
		if !ok || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		key, ok := command.ParseKey(objectAsString(args[1]))
		if !ok {
			log.WithFields(logrus.Fields{
				"script": r.Name,
				"key":    objectAsString(args[1]),
			}).Warn("set_binding: unknown key")
			return tengo.FalseValue, nil
		}
		r.commands.SetKeyboardBinding(cmd, key)
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (r *Runtime) commandArg(args []tengo.Object) (command.Command, bool) {
	if r.commands == nil || len(args) < 1 {
		return command.None, false
	}
	name := strings.TrimSpace(objectAsString(args[0]))
	cmd, err := command.ParseCommand(name, r.Declared...)
	if err != nil {
		log.WithFields(logrus.Fields{
			"script":  r.Name,
			"command": name,
		}).Warn("unknown command")
		return command.None, false
	}
	return cmd, true
}

// DispatchMapEvent forwards a map event. Switch events go to on_switch,
// everything else to on_map_event.
func (r *Runtime) DispatchMapEvent(ev ecs.Event) error {
	args := map[string]any{"type": ev.Type}
	switch data := ev.Data.(type) {
	case entity.Entity:
		args["entity"] = data.Core().Name
		args["kind"] = data.Kind().String()
		args["layer"] = data.Core().Layer()
	case bool:
		args["value"] = data
	case nil:
	default:
		if s, ok := data.(interface{ String() string }); ok {
			args["value"] = s.String()
		}
	}

	switch ev.Type {
	case "switch_activated", "switch_inactivated":
		args["activated"] = ev.Type == "switch_activated"
		return r.Dispatch("on_switch", args)
	}
	return r.Dispatch("on_map_event", args)
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
