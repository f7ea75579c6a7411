package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/questcore/command"
	"golang.org/x/image/font/basicfont"
)

var (
	textColor   = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	accentColor = color.NRGBA{R: 0xff, G: 0xd0, B: 0x40, A: 0xff}
)

// PauseUI lists the commands of the game. Clicking a command waits for the
// next key or joypad input and binds it.
type PauseUI struct {
	g      *Game
	ui     *ebitenui.UI
	status *widget.Text
	rows   map[command.Command]*widget.Button
	order  []command.Command
}

func NewPauseUI(g *Game) *PauseUI {
	p := &PauseUI{g: g, rows: map[command.Command]*widget.Button{}}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/2, baseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Paused: click a command to rebind it", &face, textColor),
		widget.TextOpts.WidgetOpts(center),
	))

	p.order = append([]command.Command(nil), command.Builtins...)
	for _, name := range g.quest.Commands {
		if cmd, err := command.ParseCommand(name, g.quest.Commands...); err == nil && cmd.IsCustom() {
			p.order = append(p.order, cmd)
		}
	}
	for _, cmd := range p.order {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: hoverImg}),
			widget.ButtonOpts.Text(p.label(cmd), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				p.customize(cmd)
			}),
		)
		p.rows[cmd] = btn
		panel.AddChild(btn)
	}

	p.status = widget.NewText(
		widget.TextOpts.Text("", &face, accentColor),
		widget.TextOpts.WidgetOpts(center),
	)
	panel.AddChild(p.status)

	panel.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: hoverImg}),
		widget.ButtonOpts.Text("Resume", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(center),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			g.setPaused(false)
		}),
	))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	p.ui = &ebitenui.UI{Container: root}
	return p
}

func (p *PauseUI) label(cmd command.Command) string {
	c := p.g.commands
	key := c.KeyboardBinding(cmd).String()
	if key == "" {
		key = "-"
	}
	pad := c.JoypadBinding(cmd).String()
	if pad == "" {
		pad = "-"
	}
	return fmt.Sprintf("%-8s %-14s %s", cmd, key, pad)
}

func (p *PauseUI) customize(cmd command.Command) {
	c := p.g.commands
	if c.IsCustomizing() {
		return
	}
	p.status.Label = fmt.Sprintf("press a key or button for %s (escape cancels)", cmd)
	c.Customize(cmd, func(cmd command.Command, ok bool) {
		if ok {
			p.status.Label = fmt.Sprintf("%s rebound", cmd)
		} else {
			p.status.Label = fmt.Sprintf("%s unchanged", cmd)
		}
		p.Refresh()
	})
}

// Refresh redraws every binding label; a customization may have swapped two
// of them.
func (p *PauseUI) Refresh() {
	for cmd, btn := range p.rows {
		btn.Text().Label = p.label(cmd)
	}
}

func (p *PauseUI) Update() { p.ui.Update() }

func (p *PauseUI) Draw(screen *ebiten.Image) { p.ui.Draw(screen) }
