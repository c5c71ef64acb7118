package layout

// Options 配置排版阶段的换行与对齐参数。
type Options struct {
	Wrap    int     // 每行最多字符数（按 rune 计）
	HAlign  HAlign
	VAlign  VAlign
	Padding float64 // 像素
}

// Typesetter 负责用选定字体测量单行文本的墨迹框。
type Typesetter interface {
	MeasureLine(content string) (TextLine, error)
}
