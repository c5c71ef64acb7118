package canvasrenderer

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/quotegen/errkind"
	"github.com/ByLCY/quotegen/layout"
)

// Surface 是待合成的画布：解码后的背景图片，或固定尺寸的纯色底。
type Surface struct {
	Width  float64
	Height float64

	background layout.Background
	image      image.Image
}

// OpenSurface 根据背景描述创建画布。
// 纯色背景固定为 800×600；图片背景的尺寸取自图片本身。
func OpenSurface(bg layout.Background) (*Surface, error) {
	if bg.Color != nil {
		return &Surface{
			Width:      layout.DefaultCanvasWidth,
			Height:     layout.DefaultCanvasHeight,
			background: bg,
		}, nil
	}
	if bg.Path == "" {
		return nil, errkind.New(errkind.Usage, "必须提供背景图片或背景颜色")
	}

	file, err := os.Open(bg.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, errkind.Wrap(errkind.NotFound, bg.Path, err, "找不到背景图片 %s", bg.Path)
		}
		return nil, errkind.Wrap(errkind.Decode, bg.Path, err, "打开背景图片 %s 失败", bg.Path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err == nil && info.IsDir() {
		return nil, errkind.Wrap(errkind.NotFound, bg.Path, fs.ErrInvalid, "背景图片 %s 是目录", bg.Path)
	}

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errkind.Wrap(errkind.Decode, bg.Path, err, "解码背景图片 %s 失败", bg.Path)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errkind.Wrap(errkind.Decode, bg.Path, fmt.Errorf("尺寸 %dx%d", b.Dx(), b.Dy()), "背景图片 %s 尺寸无效", bg.Path)
	}
	return &Surface{
		Width:      float64(b.Dx()),
		Height:     float64(b.Dy()),
		background: bg,
		image:      img,
	}, nil
}

// Background 返回创建画布时使用的背景描述。
func (s *Surface) Background() layout.Background { return s.background }
