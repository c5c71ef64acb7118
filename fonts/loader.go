package fonts

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ByLCY/quotegen/errkind"
)

// DefaultSystemName 是未指定字体时优先尝试的系统字体名。
const DefaultSystemName = "Arial"

// Options 配置字体回退链；所有默认值都显式传入，不依赖包级状态。
type Options struct {
	SystemName  string   // 未指定字体路径时尝试的系统字体名（不含扩展名）
	DefaultSize float64  // 内置默认字体的固定像素字号
	SearchDirs  []string // 系统字体搜索目录，按顺序递归查找
	Logger      *slog.Logger
}

// DefaultOptions 返回 Arial → arial → 内置字体 的默认配置。
func DefaultOptions() Options {
	return Options{
		SystemName:  DefaultSystemName,
		DefaultSize: DefaultFaceSize,
		SearchDirs:  DefaultSearchDirs(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// attempt 是回退链中的一个加载步骤。
type attempt struct {
	desc string
	load func() (*Face, error)
}

// Resolve 依次尝试回退链，首个成功者胜出：
//   - 指定了 path：只尝试该路径，失败后直接使用内置默认字体；
//   - 未指定：依次尝试 SystemName 与其小写形式，均失败后使用内置默认字体。
//
// 回退到内置字体时记录一条 warning，不视为致命错误。
func Resolve(path string, size float64, opts Options) (*Face, error) {
	logger := opts.logger()

	var chain []attempt
	if path != "" {
		chain = []attempt{fileAttempt(path, size)}
	} else {
		chain = systemAttempts(opts.SystemName, size, opts.SearchDirs)
	}

	var failures []error
	for _, a := range chain {
		face, err := a.load()
		if err == nil {
			logger.Debug("字体加载成功", "font", face.Name, "src", face.Src, "size", face.Size)
			return face, nil
		}
		failures = append(failures, errkind.Wrap(errkind.FontLoad, a.desc, err, "字体 %s 加载失败", a.desc))
	}

	face, err := Default(opts.DefaultSize)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Warn("无法加载指定字体，改用内置默认字体", "path", path, "fallback", face.Name, "size", face.Size, "error", errors.Join(failures...))
	} else {
		logger.Warn("未找到系统字体，改用内置默认字体", "name", opts.SystemName, "fallback", face.Name, "size", face.Size, "error", errors.Join(failures...))
	}
	return face, nil
}

func fileAttempt(path string, size float64) attempt {
	return attempt{desc: path, load: func() (*Face, error) {
		if IsBuiltin(path) {
			data, err := LoadBuiltin(path)
			if err != nil {
				return nil, err
			}
			return NewFace(path, data, size)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return NewFace(path, data, size)
	}}
}

// systemAttempts 先试原名再试小写名，两者相同时只试一次。
func systemAttempts(name string, size float64, dirs []string) []attempt {
	if name == "" {
		return nil
	}
	names := []string{name}
	if lower := strings.ToLower(name); lower != name {
		names = append(names, lower)
	}
	chain := make([]attempt, 0, len(names))
	for _, n := range names {
		file := n
		if filepath.Ext(file) == "" {
			file += ".ttf"
		}
		chain = append(chain, attempt{desc: file, load: func() (*Face, error) {
			path, err := FindSystemFont(file, dirs)
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			return NewFace(path, data, size)
		}})
	}
	return chain
}

// FindSystemFont 先把 file 当作相对当前目录的路径，再在 dirs 中递归查找同名文件（区分大小写）。
func FindSystemFont(file string, dirs []string) (string, error) {
	if info, err := os.Stat(file); err == nil && !info.IsDir() {
		return file, nil
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		var found string
		_ = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && p != dir {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() && d.Name() == file {
				found = p
				return fs.SkipAll
			}
			return nil
		})
		if found != "" {
			return found, nil
		}
	}
	return "", &fs.PathError{Op: "find", Path: file, Err: fs.ErrNotExist}
}

// DefaultSearchDirs 返回当前平台常见的字体目录。
func DefaultSearchDirs() []string {
	home, _ := os.UserHomeDir()
	var dirs []string
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
	case "darwin":
		dirs = append(dirs, "/Library/Fonts", "/System/Library/Fonts")
		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
	default:
		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".fonts"))
		}
		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" && home != "" {
			dataHome = filepath.Join(home, ".local", "share")
		}
		if dataHome != "" {
			dirs = append(dirs, filepath.Join(dataHome, "fonts"))
		}
		dataDirs := os.Getenv("XDG_DATA_DIRS")
		if dataDirs == "" {
			dataDirs = "/usr/local/share:/usr/share"
		}
		for _, d := range filepath.SplitList(dataDirs) {
			if d != "" {
				dirs = append(dirs, filepath.Join(d, "fonts"))
			}
		}
	}
	return dirs
}
