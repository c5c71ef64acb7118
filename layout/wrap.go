package layout

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Wrap 以字符数为界做贪心换行：先做 NFC 规范化，再按空白分词。
// 超过 width 的单词独占一行，不做拆分；空白文本返回 nil。
func Wrap(content string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Fields(norm.NFC.String(content))
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var builder strings.Builder
	count := 0
	emit := func() {
		if builder.Len() == 0 {
			return
		}
		lines = append(lines, builder.String())
		builder.Reset()
		count = 0
	}

	for _, word := range words {
		n := utf8.RuneCountInString(word)
		if count > 0 && count+1+n > width {
			emit()
		}
		if count > 0 {
			builder.WriteByte(' ')
			count++
		}
		builder.WriteString(word)
		count += n
	}
	emit()
	return lines
}
