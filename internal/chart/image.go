package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type ImageFormat string

const (
	FormatPNG ImageFormat = "png"
	FormatSVG ImageFormat = "svg"
)

// ParseImageFormat accepts "png" or "svg" in any case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch ImageFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

func (f ImageFormat) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

type ImageOptions struct {
	Format ImageFormat
	Width  int
	Height int
}

func DefaultImageOptions() ImageOptions {
	return ImageOptions{Format: FormatPNG, Width: 1100, Height: 500}
}

const maxXTicks = 12

var printer = message.NewPrinter(language.English)

// WriteImage draws spec as a line chart. Series without points are not drawn;
// when nothing is drawable the frame, title and axes are still rendered.
func WriteImage(w io.Writer, spec ChartSpec, opts ImageOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultImageOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	graph := buildGraph(spec, opts)

	var provider gochart.RendererProvider = gochart.PNG
	if opts.Format == FormatSVG {
		provider = gochart.SVG
	}
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	return nil
}

func buildGraph(spec ChartSpec, opts ImageOptions) *gochart.Chart {
	xMin, xMax := xBounds(spec.Years)
	yMin, yMax, drawable := yBounds(spec.Series)

	var series []gochart.Series
	for _, s := range spec.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = float64(p.Year)
			ys[i] = p.Value
		}
		color := hexColor(s.Color)
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
				DotColor:    color,
				DotWidth:    3.5,
			},
		})
	}

	if !drawable {
		// keeps the axes drawable for an empty selection
		series = append(series, gochart.ContinuousSeries{
			XValues: []float64{xMin, xMax},
			YValues: []float64{0, 0},
			Style: gochart.Style{
				StrokeColor: drawing.ColorTransparent,
				StrokeWidth: 1,
			},
		})
	}

	graph := &gochart.Chart{
		Title:      spec.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 56, Left: 24, Right: 24, Bottom: 24}},
		XAxis: gochart.XAxis{
			Name:  spec.XAxis.Title,
			Range: &gochart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: yearTicks(spec.Years),
		},
		YAxis: gochart.YAxis{
			Name:           spec.YAxis.Title,
			Range:          &gochart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: NumberFormatter(yMax - yMin),
		},
		Series: series,
	}
	if drawable {
		graph.Elements = []gochart.Renderable{gochart.Legend(graph)}
	}
	return graph
}

func xBounds(r YearRange) (float64, float64) {
	if !r.Valid() {
		r.From, r.To = r.To, r.From
	}
	if r.From == r.To {
		return float64(r.From) - 1, float64(r.To) + 1
	}
	return float64(r.From), float64(r.To)
}

func yBounds(series []Series) (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1, false
	}
	if lo == hi {
		pad := math.Max(math.Abs(lo)*0.1, 1)
		return lo - pad, hi + pad, true
	}
	pad := (hi - lo) * 0.05
	if lo >= 0 && lo-pad < 0 {
		return 0, hi + pad, true
	}
	return lo - pad, hi + pad, true
}

func yearTicks(r YearRange) []gochart.Tick {
	lo, hi := xBounds(r)
	from, to := int(math.Ceil(lo)), int(math.Floor(hi))
	step := 1
	for (to-from)/step+1 > maxXTicks {
		step++
	}
	ticks := make([]gochart.Tick, 0, maxXTicks)
	for y := from; y <= to; y += step {
		ticks = append(ticks, gochart.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}

// NumberFormatter formats axis values with thousands separators. Spans under
// ten get two decimals so neighbouring ticks stay distinguishable.
func NumberFormatter(span float64) gochart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprint(v)
		}
		if math.Abs(span) < 10 {
			return printer.Sprintf("%.2f", f)
		}
		return printer.Sprintf("%d", int64(math.Round(f)))
	}
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
