package layout

// 画布以 1 单位 = 1 像素 建模；底层绘图库的长度单位是 mm、字号单位是 pt，
// 因此以 1px ↔ 1mm 对应，并在设置字号时做 mm→pt 换算。

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// PxToPt 把像素字号换算成绘图库使用的 pt。
func PxToPt(px float64) float64 { return px * MmToPt }
