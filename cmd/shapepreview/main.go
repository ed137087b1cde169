// Conifer shape preview tool - interactive layout sampling with sliders.
//
// Usage: go run ./cmd/shapepreview
package main

import (
	"fmt"
	vrand "math/rand/v2"

	"github.com/chewxy/math32"
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/arbor/layout"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	panelWidth   = 330
)

// ShapeParams holds the layout sampling parameters.
type ShapeParams struct {
	Height      float32
	Radius      float32
	RadiusScale float32
	HeightScale float32
	ApexOffset  float32
	ApexSpread  float32
	Count       int
	Seed        uint32
}

func defaultParams() ShapeParams {
	return ShapeParams{
		Height:      22,
		Radius:      9,
		RadiusScale: 3.0,
		HeightScale: 2.0,
		ApexOffset:  1.2,
		ApexSpread:  0.8,
		Count:       4000,
		Seed:        12345,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Conifer Shape Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams()
	points, topper := samplePoints(params)
	showChaos := false

	cam := rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 10, Z: 45},
		Target:     rl.Vector3{X: 0, Y: 0, Z: 0},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}
	var yaw float32

	for !rl.WindowShouldClose() {
		yaw += 0.3 * rl.GetFrameTime()
		radius := float32(45)
		if showChaos {
			radius = params.Radius * params.RadiusScale * 2.2
		}
		cam.Position = rl.Vector3{
			X: radius * math32.Sin(yaw),
			Y: params.Height * 0.4,
			Z: radius * math32.Cos(yaw),
		}

		needsRegen := false

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 8, G: 10, B: 18, A: 255})

		rl.BeginMode3D(cam)
		for _, pt := range points {
			p := pt.Home
			if showChaos {
				p = pt.Chaos
			}
			rl.DrawPoint3D(rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}, rl.Color{R: 60, G: 180, B: 90, A: 255})
		}
		for _, pt := range topper {
			p := pt.Home
			if showChaos {
				p = pt.Chaos
			}
			rl.DrawSphereEx(rl.Vector3{X: p.X, Y: p.Y, Z: p.Z}, 0.3, 6, 6, rl.Gold)
		}
		rl.DrawGrid(10, 4)
		rl.EndMode3D()

		// Control panel
		panelX := float32(windowWidth - panelWidth - 10)
		panelY := float32(10)

		rl.DrawText("Conifer Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		params.Height, needsRegen = slider(panelX, &panelY, "Height", params.Height, 8, 50, needsRegen)
		params.Radius, needsRegen = slider(panelX, &panelY, "Base radius", params.Radius, 2, 25, needsRegen)
		params.RadiusScale, needsRegen = slider(panelX, &panelY, "Chaos radius scale", params.RadiusScale, 1.1, 6, needsRegen)
		params.HeightScale, needsRegen = slider(panelX, &panelY, "Chaos height scale", params.HeightScale, 1.1, 4, needsRegen)
		params.ApexOffset, needsRegen = slider(panelX, &panelY, "Topper offset", params.ApexOffset, 0.2, 4, needsRegen)
		params.ApexSpread, needsRegen = slider(panelX, &panelY, "Topper spread", params.ApexSpread, 0.2, 3, needsRegen)

		newCount, changed := slider(panelX, &panelY, "Sample count", float32(params.Count), 500, 20000, needsRegen)
		params.Count = int(newCount)
		needsRegen = changed

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 150, Height: 30}, toggleText(showChaos, "Show Tree", "Show Chaos")) {
			showChaos = !showChaos
		}
		if gui.Button(rl.Rectangle{X: panelX + 160, Y: panelY, Width: 150, Height: 30}, "Random Seed") {
			params.Seed = uint32(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 40
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 150, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 50

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 22
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			yaml := ""
			for _, line := range yamlLines(params) {
				yaml += line + "\n"
			}
			rl.SetClipboardText(yaml)
		}

		rl.DrawText(fmt.Sprintf("points: %d", len(points)+len(topper)), 10, 10, 16, rl.Gray)

		rl.EndDrawing()

		if needsRegen {
			points, topper = samplePoints(params)
		}
	}
}

// slider draws one labeled slider row and advances the panel cursor.
func slider(x float32, y *float32, label string, value, min, max float32, dirty bool) (float32, bool) {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: panelWidth - 80, Height: 20},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf("%.2f", next), int32(x+panelWidth-70), int32(*y+2), 16, rl.RayWhite)
	*y += 32
	if next != value {
		return next, true
	}
	return value, dirty
}

func yamlLines(p ShapeParams) []string {
	return []string{
		"tree:",
		fmt.Sprintf("  height: %.1f", p.Height),
		fmt.Sprintf("  radius: %.1f", p.Radius),
		fmt.Sprintf("  topper_offset: %.1f", p.ApexOffset),
		"chaos:",
		fmt.Sprintf("  radius_scale: %.1f", p.RadiusScale),
		fmt.Sprintf("  height_scale: %.1f", p.HeightScale),
	}
}

// samplePoints regenerates the layout for the current parameters.
func samplePoints(p ShapeParams) (cone, topper []layout.Point) {
	src := vrand.NewPCG(uint64(p.Seed), 0x6b79616b)

	spec := layout.GroupSpec{
		Height:     p.Height,
		Radius:     p.Radius,
		ChaosHalfX: p.Radius * p.RadiusScale,
		ChaosHalfY: p.Height * p.HeightScale / 2,
	}
	cone, err := layout.Generate(spec, p.Count, src)
	if err != nil {
		return nil, nil
	}

	spec.Apex = true
	spec.ApexOffset = p.ApexOffset
	spec.ApexSpread = p.ApexSpread
	topper, err = layout.Generate(spec, 24, src)
	if err != nil {
		return cone, nil
	}
	return cone, topper
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

