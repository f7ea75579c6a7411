package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/milk9111/questcore/command"
	"github.com/milk9111/questcore/quest"
	"github.com/sirupsen/logrus"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

var log = logrus.WithField("pkg", "bindings")

type styles struct {
	header  lipgloss.Style
	command lipgloss.Style
	binding lipgloss.Style
	missing lipgloss.Style
	title   lipgloss.Style
}

func newStyles() styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)).Padding(0, 1),
		command: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)).Padding(0, 1),
		binding: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)).Padding(0, 1),
		missing: lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)).Padding(0, 1),
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
	}
}

func main() {
	questDir := flag.String("quest", quest.DiskRoot, "directory whose files override the embedded quest data")
	settingsPath := flag.String("settings", "", "settings file whose bindings override the quest defaults")
	copyOut := flag.Bool("copy", false, "copy the bindings, in settings.yaml form, to the clipboard")
	flag.Parse()

	quest.DiskRoot = *questDir
	q, err := quest.LoadQuest()
	if err != nil {
		log.WithError(err).Error("cannot load quest")
		os.Exit(1)
	}

	d := command.NewDispatcher()
	c := d.CreateCommandsFromDefault()
	defer c.Close()
	if err := quest.ApplyDefaultBindings(c, q); err != nil {
		log.WithError(err).Warn("quest bindings partly applied")
	}
	if *settingsPath != "" {
		s, err := quest.LoadSettings(*settingsPath)
		if err != nil {
			log.WithError(err).Error("cannot load settings")
			os.Exit(1)
		}
		if err := c.ApplyBindings(s.Bindings); err != nil {
			log.WithError(err).Warn("settings partly applied")
		}
	}

	st := newStyles()
	fmt.Println(st.title.Render(q.Title))
	fmt.Println(renderTable(st, c, commandsOf(q)))

	if *copyOut {
		if err := copyBindings(c); err != nil {
			log.WithError(err).Error("clipboard unavailable")
			os.Exit(1)
		}
		fmt.Println("bindings copied to the clipboard")
	}
}

func commandsOf(q *quest.QuestSpec) []command.Command {
	out := slices.Clone(command.Builtins)
	for _, name := range q.Commands {
		cmd, err := command.ParseCommand(name, q.Commands...)
		if err == nil && !slices.Contains(out, cmd) {
			out = append(out, cmd)
		}
	}
	return out
}

func renderTable(st styles, c *command.Commands, cmds []command.Command) string {
	rows := [][]string{{"command", "keyboard", "joypad"}}
	for _, cmd := range cmds {
		rows = append(rows, []string{
			cmd.String(),
			c.KeyboardBinding(cmd).String(),
			c.JoypadBinding(cmd).String(),
		})
	}
	for _, a := range []command.Axis{command.AxisX, command.AxisY} {
		pad := ""
		if n := c.JoypadAxisBinding(a); n >= 0 {
			pad = fmt.Sprintf("axis %d", n)
		}
		rows = append(rows, []string{
			"axis " + a.String(),
			command.FormatKeyboardAxis(c.KeyboardAxisBinding(a)),
			pad,
		})
	}

	widths := make([]int, 3)
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := st.binding
			switch {
			case r == 0:
				style = st.header
			case i == 0:
				style = st.command
			case cell == "":
				style, cell = st.missing, "-"
			}
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func copyBindings(c *command.Commands) error {
	data, err := yaml.Marshal(quest.Settings{Bindings: c.Bindings()})
	if err != nil {
		return err
	}
	if err := clipboard.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
