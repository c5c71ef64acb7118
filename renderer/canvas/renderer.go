package canvasrenderer

import (
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/quotegen/fonts"
	"github.com/ByLCY/quotegen/layout"
	"github.com/ByLCY/quotegen/renderer"
)

// Renderer draws layout results onto a Surface via github.com/tdewolff/canvas.
type Renderer struct {
	surface *Surface
	face    *fonts.Face
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// NewRenderer creates a renderer bound to one surface and one resolved font face.
func NewRenderer(surface *Surface, face *fonts.Face) *Renderer {
	return &Renderer{surface: surface, face: face}
}

// MeasureLine 实现 layout.Typesetter：返回该行在当前字体下的墨迹框。
func (r *Renderer) MeasureLine(content string) (layout.TextLine, error) {
	if r.face == nil {
		return layout.TextLine{}, fmt.Errorf("renderer 未设置字体")
	}
	left, top, width, height := r.face.Bounds(content)
	return layout.TextLine{
		Content: content,
		Width:   width,
		Height:  height,
		OffsetX: left,
		OffsetY: top,
	}, nil
}

// Render 先绘制背景，再自上而下绘制每一行，最后按 result.Format 编码。
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if r.surface == nil || r.face == nil {
		return nil, fmt.Errorf("renderer 缺少画布或字体")
	}
	format, err := ParseFormat(result.Format)
	if err != nil {
		return nil, err
	}

	c := canvas.New(result.Width, result.Height)
	ctx := canvas.NewContext(c)
	// 背景在默认坐标系下绘制，图片左下角与画布原点重合即可铺满。
	r.drawBackground(ctx, result.Width, result.Height)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与排版保持左上角为原点
	r.drawBlock(ctx, result.Block, result.Color)

	return encode(c, result.Width, result.Height, format)
}

func (r *Renderer) drawBackground(ctx *canvas.Context, width, height float64) {
	if r.surface.image != nil {
		ctx.DrawImage(0, 0, r.surface.image, canvas.DPMM(1.0))
		return
	}
	fill := layout.Color{}
	if c := r.surface.background.Color; c != nil {
		fill = *c
	}
	ctx.SetFillColor(colorFromLayout(fill))
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(width, height))
}

// drawBlock 以每行的 (X, Y) 作为上升线左端，基线 = Y + Ascent。
func (r *Renderer) drawBlock(ctx *canvas.Context, block layout.Block, col layout.Color) {
	face := r.face.CanvasFace(colorFromLayout(col))
	ascent := r.face.Ascent()
	for _, line := range block.Lines {
		if line.Content == "" {
			continue
		}
		text := canvas.NewTextLine(face, line.Content, canvas.Left)
		ctx.DrawText(line.X, line.Y+ascent, text)
	}
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}
