package renderer

import "github.com/ByLCY/quotegen/layout"

// Renderer 将排版结果输出为最终文件内容，例如 PNG、JPEG 或 PDF。
// Render 返回编码后的字节以及可能的错误；写盘由调用方负责。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}
