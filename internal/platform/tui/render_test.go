package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/render"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, cols, rows int
		outW, outH             int
		scale                  float64
	}{
		{"downsample wide", 960, 540, 120, 40, 120, 66, 8},
		{"upsample", 10, 10, 20, 20, 20, 20, 0.5},
		{"exact", 4, 4, 4, 2, 4, 4, 1},
		{"empty buffer", 0, 10, 20, 20, 0, 0, 0},
		{"no room", 10, 10, 0, 5, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, s := Fit(tt.srcW, tt.srcH, tt.cols, tt.rows)
			if w != tt.outW || h != tt.outH || s != tt.scale {
				t.Errorf("Fit() = (%d, %d, %v), expected (%d, %d, %v)", w, h, s, tt.outW, tt.outH, tt.scale)
			}
		})
	}
}

func TestPresenterRender(t *testing.T) {
	buf := render.NewBuffer(4, 4)
	buf.Fill(core.ColorBlack)
	white := core.PixelOf(core.ColorWhite)
	for x := 0; x < 4; x++ {
		buf.Set(x, 0, white)
		buf.Set(x, 1, white)
	}

	p := NewPresenter(lipgloss.NewRenderer(io.Discard))
	got := p.Render(buf, 4, 2)

	expected := strings.Repeat(halfBlock, 4) + "\n" + strings.Repeat(halfBlock, 4)
	if got != expected {
		t.Errorf("Render() = %q, expected %q", got, expected)
	}
	if len(p.styles) != 2 {
		t.Errorf("cached %d styles, expected one per color pair", len(p.styles))
	}
}

func TestPresenterRenderEmpty(t *testing.T) {
	p := NewPresenter(lipgloss.NewRenderer(io.Discard))
	if got := p.Render(render.NewBuffer(0, 0), 80, 24); got != "" {
		t.Errorf("Render() = %q, expected empty", got)
	}
}

func TestHexColor(t *testing.T) {
	if got := hexColor(core.PixelOf(core.ColorYellow)); got != "#ffff00" {
		t.Errorf("hexColor() = %q, expected #ffff00", got)
	}
}
