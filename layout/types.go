package layout

// 该文件定义排版结果与资源描述，供排版计算、渲染与调试 JSON 共用。
// 画布坐标以像素为单位，原点在左上角，y 轴向下。

import (
	"strings"

	"github.com/ByLCY/quotegen/errkind"
)

// DefaultCanvasWidth 与 DefaultCanvasHeight 是纯色背景画布的固定尺寸。
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// Result 是渲染器的输入：画布、背景、字体、颜色与排好位置的文本块。
type Result struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Background Background   `json:"background"`
	Font       FontResource `json:"font"`
	Color      Color        `json:"color"`
	Format     string       `json:"format"`
	Block      Block        `json:"block"`
}

// Background 二选一：图片路径或纯色。
type Background struct {
	Path  string `json:"path,omitempty"`
	Color *Color `json:"color,omitempty"`
}

// FontResource 记录最终选用的字体。
type FontResource struct {
	Name     string  `json:"name"`
	Src      string  `json:"src"`
	Size     float64 `json:"size"`     // 像素
	Fallback bool    `json:"fallback"` // 是否为内置默认字体
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HAlign 为逐行水平对齐方式。
type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

// VAlign 为整个文本块的垂直对齐方式。
type VAlign string

const (
	AlignTop    VAlign = "top"
	AlignMiddle VAlign = "center"
	AlignBottom VAlign = "bottom"
)

// ParseHAlign 接受 left/center/right（忽略大小写），空串视为 center。
func ParseHAlign(v string) (HAlign, error) {
	switch HAlign(strings.ToLower(strings.TrimSpace(v))) {
	case "", AlignCenter:
		return AlignCenter, nil
	case AlignLeft:
		return AlignLeft, nil
	case AlignRight:
		return AlignRight, nil
	default:
		return "", errkind.New(errkind.Usage, "水平对齐方式无效 %q，可选 left/center/right", v)
	}
}

// ParseVAlign 接受 top/center/bottom（忽略大小写），空串视为 center。
func ParseVAlign(v string) (VAlign, error) {
	switch VAlign(strings.ToLower(strings.TrimSpace(v))) {
	case "", AlignMiddle:
		return AlignMiddle, nil
	case AlignTop:
		return AlignTop, nil
	case AlignBottom:
		return AlignBottom, nil
	default:
		return "", errkind.New(errkind.Usage, "垂直对齐方式无效 %q，可选 top/center/bottom", v)
	}
}

// Block 是按顺序排列的行集合，作为整体参与垂直定位。
type Block struct {
	Top    float64    `json:"top"`
	Height float64    `json:"height"` // 各行高度之和
	Lines  []TextLine `json:"lines"`
}

// TextLine 表示换行后的一行文本及其测量框与绘制位置。
type TextLine struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	// 墨迹框相对于绘制原点（上升线左端）的偏移。
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
}
