package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wireframe/assets"
	"github.com/pthm-cable/wireframe/config"
	"github.com/pthm-cable/wireframe/demo"
)

// Slider ranges for the editing forms.
const (
	positionRange = 20
	velocityRange = 10
	maxPlanetMass = 10000
	minModelSize  = 0.05
	maxModelSize  = 3
)

// PlanetForm holds the values of the new-planet sliders.
type PlanetForm struct {
	Color    [3]float32
	Position [3]float32
	Velocity [3]float32
	Mass     float32
	Size     float32
}

// BodyConfig converts the form to a sphere body.
func (f PlanetForm) BodyConfig() config.BodyConfig {
	return config.BodyConfig{
		Model:    assets.Sphere,
		Color:    rgb(f.Color),
		Mass:     float64(f.Mass),
		Size:     float64(f.Size),
		Position: vec3(f.Position),
		Velocity: vec3(f.Velocity),
	}
}

// ModelForm holds the values of the new-model controls.
type ModelForm struct {
	Model    int // index into the model list
	Color    [3]float32
	Position [3]float32
	Size     float32
}

// BoxForm holds the values of the box demo sliders.
type BoxForm struct {
	Size  float32
	Balls float32
}

// Actions reports what the user asked for this frame.
type Actions struct {
	Demo         demo.Kind // empty unless a demo button was pressed
	ToggleWalk   bool
	ToggleOSD    bool
	ToggleFloor  bool
	CreatePlanet bool
	ResetPlanets bool
	CreateModel  bool
	RemoveModels bool
	RerunBox     bool
}

// View is the state the panels reflect.
type View struct {
	Demo    demo.Kind
	Walking bool
	OSD     bool
	Floor   bool
}

// Panels is the column of raygui panels on the left of the screen.
type Panels struct {
	renderer *Renderer
	x, y     float32
	width    float32

	Planet PlanetForm
	Model  ModelForm
	Box    BoxForm

	models []string
	box    config.BoxConfig
	rects  []rl.Rectangle
}

// NewPanels creates the panels with forms seeded from cfg.
func NewPanels(cfg *config.Config) *Panels {
	p := &Panels{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    260,
		models:   assets.Names(),
		Planet: PlanetForm{
			Color:    [3]float32{255, 255, 255},
			Position: [3]float32{5, 0, 0},
			Velocity: [3]float32{0, 0, 5},
			Mass:     100,
			Size:     0.25,
		},
		Model: ModelForm{
			Color: [3]float32{255, 255, 255},
			Size:  1,
		},
	}
	p.SetConfig(cfg)
	return p
}

// SetConfig resets the box sliders to the configured values and ranges.
func (p *Panels) SetConfig(cfg *config.Config) {
	p.box = cfg.Demos.Box
	p.Box = BoxForm{Size: float32(cfg.Demos.Box.Size), Balls: float32(cfg.Demos.Box.Balls)}
}

// ModelConfig converts the model form using the embedded model list.
func (p *Panels) ModelConfig() config.ModelConfig {
	return config.ModelConfig{
		Model:    p.modelName(),
		Color:    rgb(p.Model.Color),
		Size:     float64(p.Model.Size),
		Position: vec3(p.Model.Position),
	}
}

// BoxSize returns the box slider values rounded to whole numbers.
func (p *Panels) BoxSize() (size, balls int) {
	return int(p.Box.Size + 0.5), int(p.Box.Balls + 0.5)
}

func (p *Panels) modelName() string {
	if len(p.models) == 0 {
		return assets.Cube
	}
	return p.models[p.Model.Model%len(p.models)]
}

// Contains reports whether pt lies on a panel drawn last frame.
func (p *Panels) Contains(x, y float32) bool {
	for _, r := range p.rects {
		if x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height {
			return true
		}
	}
	return false
}

// Draw lays out and draws the panels for v and returns the requested actions.
func (p *Panels) Draw(v View) Actions {
	return p.run(v, false)
}

// Measure lays out the panels without drawing them and records their bounds.
func (p *Panels) Measure(v View) {
	p.run(v, true)
}

func (p *Panels) run(v View, measureOnly bool) Actions {
	var act Actions
	p.rects = p.rects[:0]
	y := p.y

	y = p.panel(y, measureOnly, func(l *layout) { p.mainPanel(l, v, &act) })
	switch v.Demo {
	case demo.Planets:
		p.panel(y, measureOnly, func(l *layout) { p.planetPanel(l, &act) })
	case demo.Models:
		p.panel(y, measureOnly, func(l *layout) { p.modelPanel(l, &act) })
	case demo.Box:
		p.panel(y, measureOnly, func(l *layout) { p.boxPanel(l, &act) })
	}
	return act
}

// panel measures content, draws the background and then the content. It
// returns the y below the panel.
func (p *Panels) panel(y float32, measureOnly bool, content func(l *layout)) float32 {
	theme := p.renderer.Theme
	pad := float32(theme.Padding)

	m := layout{theme: theme, measure: true, x: p.x + pad, y: y + pad, w: p.width - 2*pad}
	content(&m)
	rect := rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: m.y - y + pad - float32(theme.Gap)}
	p.rects = append(p.rects, rect)

	if !measureOnly {
		p.renderer.DrawPanel(rect)
		l := layout{theme: theme, x: p.x + pad, y: y + pad, w: p.width - 2*pad}
		content(&l)
	}
	return rect.Y + rect.Height + pad
}

func (p *Panels) mainPanel(l *layout, v View, act *Actions) {
	l.header("Wireframe")
	switch l.buttons(
		toggleText(v.Walking, "Walk: on", "Walk: off"),
		toggleText(v.OSD, "OSD: on", "OSD: off"),
		toggleText(v.Floor, "Floor: on", "Floor: off"),
	) {
	case 0:
		act.ToggleWalk = true
	case 1:
		act.ToggleOSD = true
	case 2:
		act.ToggleFloor = true
	}

	labels := make([]string, len(demo.Kinds))
	for i, k := range demo.Kinds {
		labels[i] = toggleText(k == v.Demo, "["+string(k)+"]", string(k))
	}
	if i := l.buttons(labels...); i >= 0 {
		act.Demo = demo.Kinds[i]
	}
}

func (p *Panels) planetPanel(l *layout, act *Actions) {
	f := &p.Planet
	l.header("New planet")
	colorSliders(l, &f.Color)
	vecSliders(l, "Position", &f.Position, positionRange)
	vecSliders(l, "Velocity", &f.Velocity, velocityRange)
	f.Mass = l.slider("Mass", "%.0f", f.Mass, 1, maxPlanetMass)
	f.Size = l.slider("Size", "%.2f", f.Size, minModelSize, maxModelSize)

	switch l.buttons("Create", "Reset") {
	case 0:
		act.CreatePlanet = true
	case 1:
		act.ResetPlanets = true
	}
}

func (p *Panels) modelPanel(l *layout, act *Actions) {
	f := &p.Model
	l.header("New model")
	n := max(len(p.models), 1)
	switch l.buttons("<", p.modelName(), ">") {
	case 0:
		f.Model = (f.Model + n - 1) % n
	case 1, 2:
		f.Model = (f.Model + 1) % n
	}
	colorSliders(l, &f.Color)
	vecSliders(l, "Position", &f.Position, positionRange)
	f.Size = l.slider("Size", "%.2f", f.Size, minModelSize, maxModelSize)

	switch l.buttons("Create", "Remove all") {
	case 0:
		act.CreateModel = true
	case 1:
		act.RemoveModels = true
	}
}

func (p *Panels) boxPanel(l *layout, act *Actions) {
	l.header("Box")
	p.Box.Size = l.slider("Size", "%.0f", p.Box.Size, float32(p.box.MinSize), float32(p.box.MaxSize))
	p.Box.Balls = l.slider("Balls", "%.0f", p.Box.Balls, float32(p.box.MinBalls), float32(p.box.MaxBalls))
	if l.buttons("Rerun") == 0 {
		act.RerunBox = true
	}
}

func colorSliders(l *layout, c *[3]float32) {
	for i, name := range [3]string{"Red", "Green", "Blue"} {
		c[i] = l.slider(name, "%.0f", c[i], 0, 255)
	}
}

func vecSliders(l *layout, label string, v *[3]float32, bound float32) {
	for i, axis := range [3]string{"X", "Y", "Z"} {
		v[i] = l.slider(fmt.Sprintf("%s %s", label, axis), "%.2f", v[i], -bound, bound)
	}
}

func rgb(c [3]float32) config.RGB {
	var out config.RGB
	for i, v := range c {
		out[i] = uint8(min(max(v, 0), 255))
	}
	return out
}

func vec3(v [3]float32) config.Vec3 {
	return config.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}
