package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ByLCY/quotegen/binding"
	"github.com/ByLCY/quotegen/errkind"
	"github.com/ByLCY/quotegen/fonts"
	"github.com/ByLCY/quotegen/layout"
	"github.com/ByLCY/quotegen/quote"
	"github.com/ByLCY/quotegen/rgb"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// cliConfig 保存原样的命令行输入，校验在 request 中完成。
type cliConfig struct {
	quote      string
	output     string
	background string
	font       string
	size       int
	textColor  string
	bgColor    string
	wrap       int
	halign     string
	valign     string
	padding    int
	data       string
	debug      string
	verbose    bool
}

// run 串联参数解析、校验与生成，返回进程退出码。
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}

	logger := newLogger(stderr, cfg.verbose)
	req, opts, err := cfg.request()
	if err != nil {
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
	opts.Logger = logger

	art, err := quote.Generate(req, opts)
	if err != nil {
		fmt.Fprintf(stderr, "生成图片失败: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "已生成图片：%s (blake2b %s)\n", art.Path, art.Digest)
	return 0
}

func newFlagSet(cfg *cliConfig, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("quotegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	stringFlag(fs, &cfg.background, "background", "b", "", "背景图片路径")
	stringFlag(fs, &cfg.font, "font", "f", "", "字体文件路径（.ttf/.otf），也可写 builtin:gomono 等内置字体")
	intFlag(fs, &cfg.size, "size", "s", quote.DefaultFontSize, "字号（像素）")
	stringFlag(fs, &cfg.textColor, "textcolor", "tc", "255,255,255", "文字颜色，R,G,B 格式（例如 255,0,0 为红色）")
	stringFlag(fs, &cfg.bgColor, "bgcolor", "bc", "", "背景颜色，R,G,B 格式（例如 0,0,0 为黑色）")
	intFlag(fs, &cfg.wrap, "wrap", "w", quote.DefaultWrap, "每行最多字符数")
	stringFlag(fs, &cfg.halign, "halign", "ha", string(layout.AlignCenter), "水平对齐：left/center/right")
	stringFlag(fs, &cfg.valign, "valign", "va", string(layout.AlignMiddle), "垂直对齐：top/center/bottom")
	intFlag(fs, &cfg.padding, "padding", "p", quote.DefaultPadding, "文字与画布边缘的间距（像素）")
	stringFlag(fs, &cfg.data, "data", "d", "", "绑定到文字中 ${path} 占位符的 JSON 数据")
	fs.StringVar(&cfg.debug, "debug", "", "排版调试 JSON 输出路径")
	fs.BoolVar(&cfg.verbose, "verbose", false, "输出详细过程日志")
	fs.BoolVar(&cfg.verbose, "v", false, "--verbose 的简写")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "用法: quotegen [选项] <文字> <输出文件>\n\n将文字排版到背景图片或纯色画布上，并按输出文件扩展名保存。\n\n选项:\n")
		fs.PrintDefaults()
	}
	return fs
}

func stringFlag(fs *flag.FlagSet, p *string, long, short, value, usage string) {
	fs.StringVar(p, long, value, usage)
	fs.StringVar(p, short, value, "--"+long+" 的简写")
}

func intFlag(fs *flag.FlagSet, p *int, long, short string, value int, usage string) {
	fs.IntVar(p, long, value, usage)
	fs.IntVar(p, short, value, "--"+long+" 的简写")
}

// parseArgs 允许选项出现在位置参数前后或中间；"--" 之后全部视为位置参数。
func parseArgs(args []string, stderr io.Writer) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := newFlagSet(cfg, stderr)

	var tail []string
	for i, a := range args {
		if a == "--" {
			tail = args[i+1:]
			args = args[:i]
			break
		}
	}

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}
	positional = append(positional, tail...)

	if len(positional) != 2 {
		fs.Usage()
		return nil, errkind.New(errkind.Usage, "需要 2 个位置参数 <文字> <输出文件>，实际 %d 个", len(positional))
	}
	cfg.quote, cfg.output = positional[0], positional[1]
	return cfg, nil
}

// request 校验颜色、背景与对齐参数，生成渲染请求。
func (c *cliConfig) request() (quote.Request, quote.Options, error) {
	req := quote.NewRequest(c.quote, c.output)
	opts := quote.Options{Fonts: fonts.DefaultOptions(), DebugPath: c.debug}

	textColor, err := rgb.Parse(c.textColor)
	if err != nil {
		return req, opts, fmt.Errorf("文字颜色无效: %w", err)
	}
	req.TextColor = textColor

	if c.bgColor != "" {
		bg, err := rgb.Parse(c.bgColor)
		if err != nil {
			return req, opts, fmt.Errorf("背景颜色无效: %w", err)
		}
		req.BackgroundColor = &bg
	}
	if c.background == "" && c.bgColor == "" {
		return req, opts, errkind.New(errkind.Usage, "必须提供 --background 或 --bgcolor 之一")
	}
	if c.background != "" && c.bgColor != "" {
		return req, opts, errkind.New(errkind.Usage, "--background 与 --bgcolor 只能提供一个")
	}
	req.Background = c.background

	if req.HAlign, err = layout.ParseHAlign(c.halign); err != nil {
		return req, opts, err
	}
	if req.VAlign, err = layout.ParseVAlign(c.valign); err != nil {
		return req, opts, err
	}

	data, err := binding.ParseData(c.data)
	if err != nil {
		return req, opts, errkind.Wrap(errkind.Usage, "", err, "--data 无效")
	}
	opts.Data = data

	req.FontPath = c.font
	req.FontSize = float64(c.size)
	req.Wrap = c.wrap
	req.Padding = float64(c.padding)
	return req, opts, req.Validate()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
