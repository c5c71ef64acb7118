package quote

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/ByLCY/quotegen/binding"
	"github.com/ByLCY/quotegen/errkind"
	"github.com/ByLCY/quotegen/fonts"
	"github.com/ByLCY/quotegen/layout"
	canvasrenderer "github.com/ByLCY/quotegen/renderer/canvas"
)

// Options 配置一次生成中与请求内容无关的部分。
type Options struct {
	Fonts     fonts.Options
	Data      any    // 绑定到 ${path} 占位符的数据，可为空
	DebugPath string // 非空时输出排版结果 JSON
	Logger    *slog.Logger
}

// Artifact 描述写出的文件。
type Artifact struct {
	Path   string
	Format canvasrenderer.Format
	Width  int
	Height int
	Size   int
	Digest string // BLAKE2b-256，十六进制
	Font   layout.FontResource
	Lines  []string
}

// Generate 依次执行：打开画布 → 解析字体 → 排版 → 渲染 → 原子写盘。
// 任一步失败都不会留下输出文件；调试 JSON 只在图片保存成功后写出。
func Generate(req Request, opts Options) (*Artifact, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	format, err := canvasrenderer.FormatFromPath(req.Output)
	if err != nil {
		return nil, err
	}
	halign, _ := layout.ParseHAlign(string(req.HAlign))
	valign, _ := layout.ParseVAlign(string(req.VAlign))

	text := binding.Interpolate(req.Quote, opts.Data)
	logger.Debug("开始生成", "quote", text, "background", req.Background, "output", req.Output)

	surface, err := canvasrenderer.OpenSurface(req.background())
	if err != nil {
		return nil, err
	}
	logger.Debug("画布就绪", "width", surface.Width, "height", surface.Height, "solid", req.BackgroundColor != nil)

	fontOpts := opts.Fonts
	if fontOpts.Logger == nil {
		fontOpts.Logger = logger
	}
	face, err := fonts.Resolve(req.FontPath, req.FontSize, fontOpts)
	if err != nil {
		return nil, fmt.Errorf("加载字体失败: %w", err)
	}
	defer face.Close()

	r := canvasrenderer.NewRenderer(surface, face)
	block, err := layout.Build(text, surface.Width, surface.Height, layout.Options{
		Wrap:    req.Wrap,
		HAlign:  halign,
		VAlign:  valign,
		Padding: req.Padding,
	}, r)
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}

	lines := make([]string, len(block.Lines))
	for i, ln := range block.Lines {
		lines[i] = ln.Content
	}
	logger.Debug("换行完成", "lines", lines, "blockHeight", block.Height, "top", block.Top)

	result := &layout.Result{
		Width:      surface.Width,
		Height:     surface.Height,
		Background: surface.Background(),
		Font:       face.Resource(),
		Color:      req.TextColor,
		Format:     string(format),
		Block:      *block,
	}

	data, err := r.Render(result)
	if err != nil {
		return nil, err
	}
	if err := writeAtomic(req.Output, data); err != nil {
		return nil, err
	}
	if opts.DebugPath != "" {
		if err := layout.WriteDebugJSON(result, opts.DebugPath); err != nil {
			return nil, fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	sum := blake2b.Sum256(data)
	artifact := &Artifact{
		Path:   req.Output,
		Format: format,
		Width:  int(surface.Width),
		Height: int(surface.Height),
		Size:   len(data),
		Digest: hex.EncodeToString(sum[:]),
		Font:   face.Resource(),
		Lines:  lines,
	}
	logger.Debug("图片已保存", "path", artifact.Path, "bytes", artifact.Size, "blake2b", artifact.Digest)
	return artifact, nil
}

// writeAtomic 先写同目录临时文件再改名，失败时不影响已有的同名文件。
// 输出目录必须已存在。
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errkind.Wrap(errkind.Write, path, err, "无法写入输出文件 %s", path)
	}
	tmpName := tmp.Name()
	cleanup := func() { os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return errkind.Wrap(errkind.Write, path, err, "写入输出文件 %s 失败", path)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errkind.Wrap(errkind.Write, path, err, "写入输出文件 %s 失败", path)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return errkind.Wrap(errkind.Write, path, err, "设置输出文件 %s 权限失败", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errkind.Wrap(errkind.Write, path, err, "保存输出文件 %s 失败", path)
	}
	return nil
}
