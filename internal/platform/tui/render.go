package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/render"
)

// halfBlock paints the top pixel as foreground and the bottom pixel as
// background, so one terminal cell shows two pixel rows.
const halfBlock = "▀"

type cellColors struct {
	top, bottom core.Pixel
}

// Presenter converts a pixel buffer into styled half-block text.
// Styles are cached per color pair.
type Presenter struct {
	renderer *lipgloss.Renderer
	styles   map[cellColors]lipgloss.Style
}

// NewPresenter creates a presenter for r. A nil renderer uses the default
// one bound to stdout.
func NewPresenter(r *lipgloss.Renderer) *Presenter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Presenter{
		renderer: r,
		styles:   make(map[cellColors]lipgloss.Style),
	}
}

// Fit returns the sampled pixel grid that fits a srcW x srcH buffer into
// cols x rows cells, keeping the aspect ratio, and the source pixels per
// sampled pixel. The grid height is always even.
func Fit(srcW, srcH, cols, rows int) (outW, outH int, scale float64) {
	if srcW <= 0 || srcH <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0, 0
	}
	scale = max(float64(srcW)/float64(cols), float64(srcH)/float64(2*rows))
	outW = min(int(float64(srcW)/scale), cols)
	outH = min(int(float64(srcH)/scale), 2*rows) &^ 1
	return outW, outH, scale
}

// Render returns the buffer scaled into at most cols x rows cells.
// Adjacent cells with the same colors share one style run.
func (p *Presenter) Render(b *render.Buffer, cols, rows int) string {
	outW, outH, scale := Fit(b.Width(), b.Height(), cols, rows)
	if outW == 0 || outH == 0 {
		return ""
	}

	sample := func(x, y int) core.Pixel {
		return b.At(int(float64(x)*scale), int(float64(y)*scale))
	}

	var sb strings.Builder
	sb.Grow(outW*outH + outH)

	for y := 0; y < outH; y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < outW {
			start := cellColors{top: sample(x, y), bottom: sample(x, y+1)}
			n := 0
			for x < outW && (cellColors{top: sample(x, y), bottom: sample(x, y+1)}) == start {
				n++
				x++
			}
			sb.WriteString(p.style(start).Render(strings.Repeat(halfBlock, n)))
		}
	}
	return sb.String()
}

func (p *Presenter) style(c cellColors) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	s := p.renderer.NewStyle().
		Foreground(lipgloss.Color(hexColor(c.top))).
		Background(lipgloss.Color(hexColor(c.bottom)))
	p.styles[c] = s
	return s
}

func hexColor(px core.Pixel) string {
	return fmt.Sprintf("#%02x%02x%02x", px.R, px.G, px.B)
}
