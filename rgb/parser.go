// Package rgb 解析命令行中 "R,G,B" 形式的颜色参数。
package rgb

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/quotegen/errkind"
	"github.com/ByLCY/quotegen/layout"
)

var (
	rgbLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Comma", Pattern: `,`},
	})

	tupleParser = participle.MustBuild[Tuple](
		participle.Lexer(rgbLexer),
		participle.Elide("Whitespace"),
	)
)

// Tuple 是逗号分隔的整数列表，通道数由 Parse 再做校验。
type Tuple struct {
	Channels []int `parser:"@Int ( ',' @Int )*"`
}

// ParseTuple 只做语法解析，不检查通道个数与取值范围。
func ParseTuple(input string) (*Tuple, error) {
	return tupleParser.ParseString("", input)
}

// Parse 将 "255,0,0" 解析为颜色；必须恰好三个 0-255 的整数。
func Parse(input string) (layout.Color, error) {
	tuple, err := ParseTuple(input)
	if err != nil {
		return layout.Color{}, errkind.Wrap(errkind.ColorFormat, "", err, "颜色格式无效 %q，应为 R,G,B（例如 255,0,0）", input)
	}
	if len(tuple.Channels) != 3 {
		return layout.Color{}, errkind.New(errkind.ColorFormat, "颜色格式无效 %q：需要 3 个分量，实际 %d 个", input, len(tuple.Channels))
	}
	for _, v := range tuple.Channels {
		if v < 0 || v > 255 {
			return layout.Color{}, errkind.New(errkind.ColorFormat, "颜色格式无效 %q：分量 %d 超出 0-255", input, v)
		}
	}
	return layout.Color{R: tuple.Channels[0], G: tuple.Channels[1], B: tuple.Channels[2]}, nil
}
