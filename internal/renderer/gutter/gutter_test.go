package gutter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/quickfind/internal/config"
	"github.com/dshills/quickfind/internal/engine/span"
	"github.com/dshills/quickfind/internal/host"
	"github.com/dshills/quickfind/internal/renderer/backend"
)

func TestIndicator(t *testing.T) {
	s := span.New(4, 7)
	tests := []struct {
		name     string
		style    config.Indicator
		selected bool
		want     host.Mark
	}{
		{"icon selected", config.IndicatorIcon, true, host.Mark{Span: s, Icon: IconCircle, Hidden: true}},
		{"icon unselected", config.IndicatorIcon, false, host.Mark{Span: s, Icon: IconDot}},
		{"superimpose selected", config.IndicatorSuperimpose, true, host.Mark{Span: s}},
		{"superimpose unselected", config.IndicatorSuperimpose, false, host.Mark{Span: s}},
		{"none selected", config.IndicatorNone, true, host.Mark{Span: s, Hidden: true}},
		{"none unselected", config.IndicatorNone, false, host.Mark{Span: s}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Indicator(tt.style, s, tt.selected))
		})
	}
}

func TestGlyph(t *testing.T) {
	require.Equal(t, '●', Glyph(IconCircle))
	require.Equal(t, '·', Glyph(IconDot))
	require.Equal(t, rune(0), Glyph(""))
}

func TestWidth(t *testing.T) {
	g := New(DefaultConfig())
	require.Equal(t, 6, g.Width())

	g.SetLineCount(12345)
	require.Equal(t, 8, g.Width())

	g.SetLineCount(0)
	require.Equal(t, 6, g.Width())

	require.Equal(t, 0, New(Config{}).Width())
	require.Equal(t, 2, New(Config{ShowSigns: true}).Width())
}

func TestRender(t *testing.T) {
	b := backend.NewNullBackend(10, 4)
	require.NoError(t, b.Init())

	g := New(DefaultConfig())
	g.SetLineCount(3)
	mark := Indicator(config.IndicatorIcon, span.New(0, 3), false)
	g.Render(b, 0, 4, 0, 1, &mark, 2)

	require.Equal(t, "    1     ", b.Row(0))
	require.Equal(t, "    2     ", b.Row(1))
	require.Equal(t, "·   3     ", b.Row(2))
	require.Equal(t, "          ", b.Row(3))

	require.Equal(t, g.currentStyle, b.GetCell(4, 1).Style)
	require.Equal(t, g.numberStyle, b.GetCell(4, 0).Style)
}

func TestRenderWithoutIcon(t *testing.T) {
	b := backend.NewNullBackend(10, 2)
	require.NoError(t, b.Init())

	g := New(DefaultConfig())
	g.SetLineCount(20)
	mark := Indicator(config.IndicatorSuperimpose, span.New(0, 3), true)
	g.Render(b, 0, 2, 9, 9, &mark, 9)

	require.Equal(t, "   10     ", b.Row(0))
	require.Equal(t, "   11     ", b.Row(1))
}
