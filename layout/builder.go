package layout

import (
	"fmt"

	"github.com/ByLCY/quotegen/errkind"
)

// Build 换行并测量每一行，再按对齐方式计算整个文本块与各行的位置。
// width/height 为画布像素尺寸；超出画布的部分不裁剪也不缩放。
func Build(content string, width, height float64, opts Options, ts Typesetter) (*Block, error) {
	if ts == nil {
		return nil, fmt.Errorf("layout: 缺少排版后端 Typesetter")
	}
	if opts.Wrap < 1 {
		return nil, errkind.New(errkind.Usage, "换行宽度必须 >= 1，实际 %d", opts.Wrap)
	}

	texts := Wrap(content, opts.Wrap)
	lines := make([]TextLine, 0, len(texts))
	total := 0.0
	for _, text := range texts {
		line, err := ts.MeasureLine(text)
		if err != nil {
			return nil, fmt.Errorf("测量文本行 %q 失败: %w", text, err)
		}
		line.Content = text
		total += line.Height
		lines = append(lines, line)
	}

	top := verticalStart(height, total, opts.Padding, opts.VAlign)
	cursorY := top
	for i := range lines {
		lines[i].X = horizontalOffset(width, lines[i].Width, opts.Padding, opts.HAlign)
		lines[i].Y = cursorY
		cursorY += lines[i].Height
	}

	return &Block{Top: top, Height: total, Lines: lines}, nil
}

func verticalStart(container, total, padding float64, align VAlign) float64 {
	switch align {
	case AlignTop:
		return padding
	case AlignBottom:
		return container - total - padding
	default:
		return (container - total) / 2
	}
}

func horizontalOffset(container, width, padding float64, align HAlign) float64 {
	switch align {
	case AlignLeft:
		return padding
	case AlignRight:
		return container - width - padding
	default:
		return (container - width) / 2
	}
}
