package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kifan/pkg/errors"
	"github.com/OpenTraceLab/kifan/pkg/fanout"
	"github.com/OpenTraceLab/kifan/pkg/kicad/pcb"
)

const previewBoard = `(kicad_pcb
	(version 20240108)
	(generator "pcbnew")
	(layers
		(0 "F.Cu" signal)
		(31 "B.Cu" signal)
		(44 "Edge.Cuts" user)
	)
	(net 0 "")
	(net 1 "GND")
	(net 2 "SIG")
	(footprint "Package_Test:QUAD-4"
		(layer "F.Cu")
		(at 100 50)
		(property "Reference" "U1" (at 0 -3 0) (layer "F.SilkS"))
		(pad "1" smd rect (at -1 0) (size 0.5 0.5) (layers "F.Cu") (net 1 "GND"))
		(pad "2" smd rect (at 0 -1) (size 0.5 0.5) (layers "F.Cu") (net 2 "SIG"))
		(pad "3" smd rect (at 0 1) (size 0.5 0.5) (layers "F.Cu"))
	)
	(gr_line (start 90 40) (end 110 40) (stroke (width 0.1) (type default)) (layer "Edge.Cuts"))
)
`

func planPreview(t *testing.T) (*pcb.Board, []*pcb.Footprint, []fanout.Result) {
	t.Helper()
	board, err := pcb.Parse(strings.NewReader(previewBoard))
	require.NoError(t, err)

	fps, err := board.SelectFootprints([]string{"U1"})
	require.NoError(t, err)

	results, err := fanout.PlanAll(pcb.Component(fps[0]), fanout.Config{
		Style:       fanout.Quadrant,
		TraceLength: 1_000_000,
		TraceWidth:  200_000,
		ViaDiameter: 600_000,
		ViaDrill:    300_000,
		ViaLayers:   fanout.LayerPair{From: "F.Cu", To: "B.Cu"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	return board, fps, results
}

// near reports whether two colors match within anti-aliasing rounding
func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) bool { return max(x, y)-min(x, y) <= 2 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func hasColor(img *image.NRGBA, want color.NRGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if near(img.NRGBAAt(x, y), want) {
				return true
			}
		}
	}
	return false
}

func TestRenderStyle(t *testing.T) {
	tests := []struct {
		name   string
		style  fanout.Style
		angle  float64
		onRay  image.Point
		offRay image.Point
	}{
		{"angled east", fanout.Angled, 0, image.Pt(70, 50), image.Pt(20, 50)},
		{"angled minus 90", fanout.Angled, -90, image.Pt(50, 30), image.Pt(50, 70)},
		{"quadrant north", fanout.Quadrant, 0, image.Pt(50, 25), image.Pt(20, 20)},
		{"diagonal", fanout.Diagonal, 0, image.Pt(70, 70), image.Pt(70, 30)},
		{"square quadrant", fanout.SquareQuadrant, 0, image.Pt(70, 29), image.Pt(70, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RenderStyle(tt.style, tt.angle, 100)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

			assert.True(t, near(ColorPad, img.NRGBAAt(50, 50)), "pad at the center")
			on := img.NRGBAAt(tt.onRay.X, tt.onRay.Y)
			assert.True(t, near(ColorRay, on), "pixel on a ray is %v", on)
			off := img.NRGBAAt(tt.offRay.X, tt.offRay.Y)
			assert.True(t, near(ColorBackground, off), "pixel off every ray is %v", off)
		})
	}
}

func TestRenderStyleErrors(t *testing.T) {
	_, err := RenderStyle(fanout.Style(42), 0, 100)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStyle), "got %v", err)

	_, err = RenderStyle(fanout.Angled, 0, 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestRenderPlan(t *testing.T) {
	board, fps, results := planPreview(t)

	for _, flip := range []bool{false, true} {
		img, err := RenderPlan(board, fps, results, Options{Width: 200, Height: 150, Flip: flip})
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 200, 150), img.Bounds())

		assert.True(t, hasColor(img, ColorPad), "connected pads drawn")
		assert.True(t, hasColor(img, ColorPadFree), "free pad drawn")
		assert.True(t, hasColor(img, LayerColor("F.Cu")), "planned tracks drawn")
		assert.True(t, hasColor(img, ColorVia), "planned vias drawn")
	}
}

func TestRenderPlanErrors(t *testing.T) {
	board, fps, results := planPreview(t)

	_, err := RenderPlan(board, nil, nil, Options{Width: 100, Height: 100})
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "got %v", err)

	_, err = RenderPlan(board, fps, results, Options{Width: -1, Height: 100})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)

	_, err = RenderPlan(board, fps, results, Options{Width: 100, Height: maxImageSize + 1})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}

func TestWritePNG(t *testing.T) {
	img, err := RenderStyle(fanout.Quadrant, 45, 64)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestSavePNG(t *testing.T) {
	img, err := RenderStyle(fanout.Diagonal, 0, 32)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "style.png")
	require.NoError(t, SavePNG(path, img))

	err = SavePNG(filepath.Join(t.TempDir(), "missing", "style.png"), img)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal), "got %v", err)
}

func TestCameraRoundTrip(t *testing.T) {
	cam := NewCamera(200, 100)
	cam.Fit(pcb.BoundingBox{
		Min: pcb.Position{X: 90, Y: 40},
		Max: pcb.Position{X: 110, Y: 50},
	}, 1)
	assert.InDelta(t, 10.0, cam.Zoom, 1e-9)

	for _, flip := range []bool{false, true} {
		cam.FlipView = flip
		x, y := cam.WorldToScreen(pcb.Position{X: 100, Y: 45})
		assert.InDelta(t, 100.0, x, 1e-9)
		assert.InDelta(t, 50.0, y, 1e-9)

		p := cam.ScreenToWorld(cam.WorldToScreen(pcb.Position{X: 92, Y: 41}))
		assert.InDelta(t, 92.0, p.X, 1e-9)
		assert.InDelta(t, 41.0, p.Y, 1e-9)
	}

	x, _ := cam.WorldToScreen(pcb.Position{X: 90, Y: 45})
	assert.InDelta(t, 200.0, x, 1e-9, "flipped view mirrors X")
}
