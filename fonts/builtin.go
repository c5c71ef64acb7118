package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFaceSize 是内置默认字体的固定像素字号；回退到默认字体时忽略请求的字号。
const DefaultFaceSize = 10

// BuiltinPrefix 标记内置字体引用，例如 "builtin:gomono"。
const BuiltinPrefix = "builtin:"

const defaultBuiltin = "goregular"

var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
	"goitalic":  goitalic.TTF,
	"gomedium":  gomedium.TTF,
	"gomono":    gomono.TTF,
}

// IsBuiltin 报告 ref 是否为 builtin: 引用。
func IsBuiltin(ref string) bool { return strings.HasPrefix(ref, BuiltinPrefix) }

// LoadBuiltin 返回内置字体的字节数据，ref 可写为 "builtin:gomono" 或直接 "gomono"。
func LoadBuiltin(ref string) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(ref, BuiltinPrefix))
	data, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体 %s%s（可选: %s）", BuiltinPrefix, name, strings.Join(BuiltinNames(), ", "))
	}
	return data, nil
}

// BuiltinNames 按字母序列出内置字体名。
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default 返回内置默认字体（Go Regular），size<=0 时使用 DefaultFaceSize。
func Default(size float64) (*Face, error) {
	if size <= 0 {
		size = DefaultFaceSize
	}
	face, err := NewFace(BuiltinPrefix+defaultBuiltin, builtins[defaultBuiltin], size)
	if err != nil {
		return nil, err
	}
	face.Fallback = true
	return face, nil
}
