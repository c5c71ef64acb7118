package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/ByLCY/quotegen/errkind"
)

// Format 是输出文件格式。
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	FormatPDF  Format = "pdf"
)

// jpegQuality 与常见图像库的默认值一致。
const jpegQuality = 75

// FormatFromPath 根据输出路径扩展名（忽略大小写）推断格式。
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	f, err := ParseFormat(ext)
	if err != nil {
		return "", errkind.Wrap(errkind.Write, path, err, "无法从输出路径 %s 推断图片格式", path)
	}
	return f, nil
}

// ParseFormat 接受格式名或扩展名（不带点）。
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", errkind.New(errkind.Write, "不支持的输出格式 %q（可选 png/jpg/gif/bmp/tiff/pdf）", name)
	}
}

func encode(c *canvas.Canvas, width, height float64, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if format == FormatPDF {
		writer := pdf.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, errkind.Wrap(errkind.Write, "", err, "写入 PDF 失败")
		}
		return buf.Bytes(), nil
	}

	// 1 个画布单位对应 1 像素。
	img := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	if err := encodeImage(&buf, img, format); err != nil {
		return nil, errkind.Wrap(errkind.Write, "", err, "编码 %s 失败", format)
	}
	return buf.Bytes(), nil
}

func encodeImage(buf *bytes.Buffer, img image.Image, format Format) error {
	switch format {
	case FormatPNG:
		return png.Encode(buf, img)
	case FormatJPEG:
		return jpeg.Encode(buf, img, &jpeg.Options{Quality: jpegQuality})
	case FormatGIF:
		return gif.Encode(buf, img, nil)
	case FormatBMP:
		return bmp.Encode(buf, img)
	case FormatTIFF:
		return tiff.Encode(buf, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("未知格式 %s", format)
	}
}
