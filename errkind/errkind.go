// Package errkind 定义生成流程中各阶段共用的错误分类。
package errkind

import (
	"errors"
	"fmt"
)

// Kind 区分失败类别，决定调用方如何处理该错误。
type Kind int

const (
	Usage       Kind = iota + 1 // 命令行参数缺失或互相矛盾
	ColorFormat                 // R,G,B 颜色串格式错误
	NotFound                    // 背景图片不存在或不可读
	Decode                      // 背景图片无法解码
	FontLoad                    // 字体加载失败，由回退链在内部消化
	Write                       // 输出文件无法写入
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case ColorFormat:
		return "color-format"
	case NotFound:
		return "not-found"
	case Decode:
		return "decode"
	case FontLoad:
		return "font-load"
	case Write:
		return "write"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error 携带错误类别、相关路径与底层原因。
type Error struct {
	Kind Kind
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// New 构造一个不带底层原因的错误。
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap 为 err 附加类别与路径；err 为 nil 时返回 nil。
func Wrap(kind Kind, path string, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Is 报告错误链中是否存在指定类别的 *Error。
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf 返回错误链中第一个 *Error 的类别，不存在时返回 0。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
