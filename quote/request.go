// Package quote 串联画布、排版与渲染，生成一张带文字的图片。
package quote

import (
	"github.com/ByLCY/quotegen/errkind"
	"github.com/ByLCY/quotegen/layout"
)

// 命令行默认值。
const (
	DefaultFontSize = 36
	DefaultWrap     = 40
	DefaultPadding  = 20
)

// DefaultTextColor 为白色。
var DefaultTextColor = layout.Color{R: 255, G: 255, B: 255}

// Request 完整描述一次渲染，构造后不再修改。
type Request struct {
	Quote           string
	Background      string        // 背景图片路径
	BackgroundColor *layout.Color // 纯色背景，与 Background 二选一
	Output          string
	FontPath        string  // 为空时走系统字体回退链
	FontSize        float64 // 像素
	TextColor       layout.Color
	Wrap            int
	HAlign          layout.HAlign
	VAlign          layout.VAlign
	Padding         float64
}

// NewRequest 返回带默认值的请求。
func NewRequest(quote, output string) Request {
	return Request{
		Quote:     quote,
		Output:    output,
		FontSize:  DefaultFontSize,
		TextColor: DefaultTextColor,
		Wrap:      DefaultWrap,
		HAlign:    layout.AlignCenter,
		VAlign:    layout.AlignMiddle,
		Padding:   DefaultPadding,
	}
}

// Validate 检查在任何画布工作开始之前就能发现的问题。
func (r Request) Validate() error {
	hasImage := r.Background != ""
	hasColor := r.BackgroundColor != nil
	switch {
	case !hasImage && !hasColor:
		return errkind.New(errkind.Usage, "必须提供 --background 或 --bgcolor 之一")
	case hasImage && hasColor:
		return errkind.New(errkind.Usage, "--background 与 --bgcolor 只能提供一个")
	}
	if r.Output == "" {
		return errkind.New(errkind.Usage, "缺少输出路径")
	}
	if r.Wrap < 1 {
		return errkind.New(errkind.Usage, "--wrap 必须 >= 1，实际 %d", r.Wrap)
	}
	if r.FontSize <= 0 {
		return errkind.New(errkind.Usage, "--size 必须 > 0，实际 %g", r.FontSize)
	}
	if _, err := layout.ParseHAlign(string(r.HAlign)); err != nil {
		return err
	}
	if _, err := layout.ParseVAlign(string(r.VAlign)); err != nil {
		return err
	}
	return nil
}

func (r Request) background() layout.Background {
	if r.BackgroundColor != nil {
		c := *r.BackgroundColor
		return layout.Background{Color: &c}
	}
	return layout.Background{Path: r.Background}
}
