package fonts

import (
	"fmt"
	"image/color"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/quotegen/layout"
)

// Face 是按像素字号加载好的字体：
// 测量走 x/image 的 OpenType 面，绘制走 canvas 的字体族，两者共用同一份字节。
type Face struct {
	Name     string
	Src      string
	Size     float64 // 像素
	Fallback bool

	family  *canvas.FontFamily
	measure font.Face
}

// NewFace 解析字体字节并在 size 像素下创建测量面与绘制字体族。
func NewFace(src string, data []byte, size float64) (*Face, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("字体 %s 内容为空", src)
	}
	if size <= 0 {
		return nil, fmt.Errorf("字号必须大于 0，实际 %g", size)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("解析字体 %s 失败: %w", src, err)
	}
	measure, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 72dpi 下 1pt = 1px
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("创建字体 %s 测量面失败: %w", src, err)
	}

	name := familyName(parsed)
	if name == "" {
		name = src
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		measure.Close()
		return nil, fmt.Errorf("加载字体 %s 到绘图库失败: %w", src, err)
	}

	return &Face{
		Name:    name,
		Src:     src,
		Size:    size,
		family:  family,
		measure: measure,
	}, nil
}

// Bounds 返回文本墨迹框：左、上偏移相对于上升线左端，宽高为像素。
func (f *Face) Bounds(text string) (left, top, width, height float64) {
	bounds, _ := font.BoundString(f.measure, text)
	if bounds.Empty() {
		return 0, 0, 0, 0
	}
	ascent := fromFixed(f.measure.Metrics().Ascent)
	left = fromFixed(bounds.Min.X)
	top = ascent + fromFixed(bounds.Min.Y)
	width = fromFixed(bounds.Max.X - bounds.Min.X)
	height = fromFixed(bounds.Max.Y - bounds.Min.Y)
	return left, top, width, height
}

// Ascent 是基线到上升线的距离（像素）。
func (f *Face) Ascent() float64 { return fromFixed(f.measure.Metrics().Ascent) }

// CanvasFace 返回指定颜色的绘制字体面；canvas 以 mm 为长度单位，这里按 1px=1mm 换算字号。
func (f *Face) CanvasFace(col color.Color) *canvas.FontFace {
	return f.family.Face(layout.PxToPt(f.Size), col, canvas.FontRegular, canvas.FontNormal)
}

// Resource 描述该字体，用于排版结果与调试输出。
func (f *Face) Resource() layout.FontResource {
	return layout.FontResource{Name: f.Name, Src: f.Src, Size: f.Size, Fallback: f.Fallback}
}

// Close 释放测量面。
func (f *Face) Close() error {
	if f == nil || f.measure == nil {
		return nil
	}
	return f.measure.Close()
}

func familyName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
