package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/milk9111/orrery/common"
	"github.com/milk9111/orrery/ecs"
	"github.com/milk9111/orrery/ecs/component"
	"github.com/rs/zerolog"
)

// Point is a small square in screen space.
type Point struct {
	X, Y  float64
	Size  float64
	Color color.NRGBA
}

// Disc is a filled circle in screen space.
type Disc struct {
	X, Y   float64
	Radius float64
	Color  color.NRGBA
}

// Body is one projected sphere with its decorations.
type Body struct {
	Entity    ecs.Entity
	Depth     float64
	Disc      Disc
	Highlight *Disc
	Markers   []Point
}

// Frame is everything visible from the camera, in paint order.
type Frame struct {
	Width, Height float64
	Stars         []Point
	Bodies        []Body
}

type pointLight struct {
	Position mgl64.Vec3
	Color    colorful.Color
	Raw      color.NRGBA
	Strength float64
}

// Renderer projects the world through the scene camera into a Frame. It
// caches the generated starfield between frames.
type Renderer struct {
	log         zerolog.Logger
	field       component.Starfield
	stars       []star
	badTextures map[string]struct{}
}

func NewRenderer(log zerolog.Logger) *Renderer {
	return &Renderer{log: log, badTextures: make(map[string]struct{})}
}

// Build returns the frame for a width x height viewport. An empty frame is
// returned when the world has no camera.
func (r *Renderer) Build(w *ecs.World, width, height float64) Frame {
	frame := Frame{Width: width, Height: height}
	camEntity, ok := w.First(component.CameraTagComponent.Kind())
	if !ok {
		return frame
	}
	cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	if !ok {
		return frame
	}
	view := *cam
	view.SetViewport(width, height)

	frame.Stars = r.buildStars(w, view, width, height)

	ambient, points := collectLights(w)
	for _, e := range w.Query(component.SphereComponent.Kind(), component.MaterialComponent.Kind(), component.WorldTransformComponent.Kind()) {
		sphere, _ := ecs.Get(w, e, component.SphereComponent.Kind())
		mat, _ := ecs.Get(w, e, component.MaterialComponent.Kind())
		wt, _ := ecs.Get(w, e, component.WorldTransformComponent.Kind())
		if body, ok := r.buildBody(e, view, *sphere, *mat, *wt, ambient, points, width, height); ok {
			frame.Bodies = append(frame.Bodies, body)
		}
	}

	sort.SliceStable(frame.Bodies, func(i, j int) bool {
		if frame.Bodies[i].Depth != frame.Bodies[j].Depth {
			return frame.Bodies[i].Depth > frame.Bodies[j].Depth
		}
		return frame.Bodies[i].Entity < frame.Bodies[j].Entity
	})
	return frame
}

func (r *Renderer) buildStars(w *ecs.World, cam component.Camera, width, height float64) []Point {
	e, ok := w.First(component.StarfieldComponent.Kind())
	if !ok {
		return nil
	}
	field, _ := ecs.Get(w, e, component.StarfieldComponent.Kind())
	if *field != r.field || r.stars == nil {
		r.field = *field
		r.stars = generateStars(*field)
		r.log.Debug().Int("count", len(r.stars)).Uint64("seed", field.Seed).Msg("starfield generated")
	}
	base := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if mat, ok := ecs.Get(w, e, component.MaterialComponent.Kind()); ok {
		base = mat.Color
	}

	out := make([]Point, 0, len(r.stars))
	for _, s := range r.stars {
		p, ok := cam.Project(s.Position, width, height)
		if !ok || p.X < 0 || p.Y < 0 || p.X >= width || p.Y >= height {
			continue
		}
		c := common.Shade(base, common.Lighting{Ambient: colorful.Color{R: s.Brightness, G: s.Brightness, B: s.Brightness}}, color.NRGBA{}, 0, 1)
		size := 1.0
		if s.Brightness > 0.8 {
			size = 2
		}
		out = append(out, Point{X: p.X, Y: p.Y, Size: size, Color: c})
	}
	return out
}

func collectLights(w *ecs.World) (colorful.Color, []pointLight) {
	var ambient colorful.Color
	var points []pointLight
	ecs.ForEach(w, component.LightComponent.Kind(), func(e ecs.Entity, l *component.Light) {
		switch l.Kind {
		case component.LightAmbient:
			ambient = common.AddLight(ambient, common.Scale(l.Color, l.Intensity))
		case component.LightPoint:
			var pos mgl64.Vec3
			if wt, ok := ecs.Get(w, e, component.WorldTransformComponent.Kind()); ok {
				pos = wt.Position()
			} else if p, err := ecs.WorldPosition(w, e); err == nil {
				pos = p
			}
			points = append(points, pointLight{
				Position: pos,
				Color:    common.Scale(l.Color, l.Intensity),
				Raw:      l.Color,
				Strength: l.Intensity,
			})
		}
	})
	return ambient, points
}

func (r *Renderer) buildBody(e ecs.Entity, cam component.Camera, sphere component.Sphere, mat component.Material, wt component.WorldTransform, ambient colorful.Color, points []pointLight, width, height float64) (Body, bool) {
	center := wt.Position()
	radius := sphere.Radius * maxScale(wt.Matrix)
	if radius <= 0 {
		return Body{}, false
	}
	p, ok := cam.Project(center, width, height)
	if !ok {
		return Body{}, false
	}
	screenR := cam.ScreenRadius(radius, p.Depth, height)
	if screenR < 0.5 {
		screenR = 0.5
	}

	base := r.baseColor(mat)
	toCam := cam.Position.Sub(center)
	if toCam.Len() > 0 {
		toCam = toCam.Normalize()
	}

	lighting := common.Lighting{Ambient: ambient}
	for _, l := range points {
		lighting.Diffuse = common.AddLight(lighting.Diffuse, scaleLight(l.Color, litFraction(center, radius, l.Position, toCam)))
	}
	body := Body{
		Entity: e,
		Depth:  p.Depth,
		Disc: Disc{
			X:      p.X,
			Y:      p.Y,
			Radius: screenR,
			Color:  common.Shade(base, lighting, mat.Emissive, mat.EmissiveIntensity, mat.Alpha()),
		},
	}
	if mat.FlatShading {
		return body, true
	}

	body.Highlight = highlight(cam, center, radius, toCam, mat, points, body.Disc, width, height)
	body.Markers = markers(cam, sphere, wt, center, toCam, body.Disc, width, height)
	return body, true
}

func (r *Renderer) baseColor(mat component.Material) color.NRGBA {
	if mat.Texture == "" {
		return mat.Color
	}
	tex, err := LoadTextureColor(mat.Texture)
	if err != nil {
		if _, seen := r.badTextures[mat.Texture]; !seen {
			r.badTextures[mat.Texture] = struct{}{}
			r.log.Warn().Err(err).Str("texture", mat.Texture).Msg("texture unavailable, using material color")
		}
		return mat.Color
	}
	return common.Multiply(mat.Color, tex)
}

// litFraction is the share of the visible hemisphere facing the light. A light
// inside the sphere lights none of its outer surface.
func litFraction(center mgl64.Vec3, radius float64, light mgl64.Vec3, toCam mgl64.Vec3) float64 {
	toLight := light.Sub(center)
	if toLight.Len() <= radius {
		return 0
	}
	return (1 + toLight.Normalize().Dot(toCam)) / 2
}

func scaleLight(c colorful.Color, f float64) colorful.Color {
	return colorful.Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

func maxScale(m mgl64.Mat4) float64 {
	s := m.Col(0).Vec3().Len()
	s = math.Max(s, m.Col(1).Vec3().Len())
	return math.Max(s, m.Col(2).Vec3().Len())
}

func highlight(cam component.Camera, center mgl64.Vec3, radius float64, toCam mgl64.Vec3, mat component.Material, points []pointLight, disc Disc, width, height float64) *Disc {
	strength := (float64(mat.Specular.R) + float64(mat.Specular.G) + float64(mat.Specular.B)) / (3 * 255) * mat.Reflectivity
	if strength <= 0 || mat.Shininess <= 0 || len(points) == 0 {
		return nil
	}
	var light *pointLight
	for i := range points {
		if light == nil || points[i].Strength > light.Strength {
			light = &points[i]
		}
	}
	toLight := light.Position.Sub(center)
	if toLight.Len() <= radius {
		return nil
	}
	half := toLight.Normalize().Add(toCam)
	if half.Len() == 0 {
		return nil
	}
	half = half.Normalize()
	if half.Dot(toCam) <= 0 {
		return nil
	}
	p, ok := cam.Project(center.Add(half.Mul(radius*0.7)), width, height)
	if !ok {
		return nil
	}
	size := disc.Radius * common.Clamp(2/math.Sqrt(mat.Shininess), 0.05, 0.5)
	return &Disc{
		X:      p.X,
		Y:      p.Y,
		Radius: size,
		Color:  common.Tint(disc.Color, light.Raw, common.Clamp(strength*4, 0, 1)),
	}
}

func markers(cam component.Camera, sphere component.Sphere, wt component.WorldTransform, center, toCam mgl64.Vec3, disc Disc, width, height float64) []Point {
	if sphere.Markers <= 0 {
		return nil
	}
	c := common.Tint(disc.Color, color.NRGBA{A: disc.Color.A}, 0.35)
	size := math.Max(1, disc.Radius*0.08)
	out := make([]Point, 0, sphere.Markers)
	for i := 0; i < sphere.Markers; i++ {
		theta := 2 * math.Pi * float64(i) / float64(sphere.Markers)
		local := mgl64.Vec4{sphere.Radius * math.Cos(theta), 0, sphere.Radius * math.Sin(theta), 1}
		world := wt.Matrix.Mul4x1(local).Vec3()
		if world.Sub(center).Dot(toCam) <= 0 {
			continue
		}
		p, ok := cam.Project(world, width, height)
		if !ok {
			continue
		}
		out = append(out, Point{X: p.X - size/2, Y: p.Y - size/2, Size: size, Color: c})
	}
	return out
}
