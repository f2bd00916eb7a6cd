package rectpack

import "fmt"

// Point 描述了二维空间中的一个位置。
type Point struct {
	// X 水平方向坐标
	X int `json:"x"`
	// Y 垂直方向坐标
	Y int `json:"y"`
}

// Size 描述了二维空间中实体的尺寸。
type Size struct {
	// Width 水平方向的尺寸
	Width int `json:"width"`
	// Height 垂直方向的尺寸
	Height int `json:"height"`
	// ID 用户定义的标识符，用于区分不同实例
	ID int `json:"-"`
}

// NewSize 使用指定的宽高创建尺寸。
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// NewSizeID 使用指定的宽高和标识符创建尺寸。
func NewSizeID(id, width, height int) Size {
	return Size{ID: id, Width: width, Height: height}
}

// String 返回尺寸的字符串表示。
func (sz *Size) String() string {
	return fmt.Sprintf("[%v, %v]", sz.Width, sz.Height)
}

// Area 返回面积（宽 * 高）。
func (sz *Size) Area() int {
	return sz.Width * sz.Height
}

// Transpose 返回宽高互换后的尺寸，ID 保持不变。
func (sz Size) Transpose() Size {
	return Size{Width: sz.Height, Height: sz.Width, ID: sz.ID}
}

// Rect 描述了二维空间中的位置（左上角）和尺寸。
type Rect struct {
	// Point 矩形左上角
	Point
	// Size 矩形的宽高
	Size
	// Rotated 放置时是否旋转了90度
	Rotated bool `json:"rotated,omitempty"`
}

// NewRect 使用指定的位置和尺寸创建矩形。
func NewRect(x, y, w, h int) Rect {
	return Rect{
		Point: Point{X: x, Y: y},
		Size:  Size{Width: w, Height: h},
	}
}

// String 返回矩形的字符串表示。
func (r *Rect) String() string {
	return fmt.Sprintf("[%v, %v, %v, %v]", r.X, r.Y, r.Width, r.Height)
}

// Right 返回右边缘的x坐标。
func (r *Rect) Right() int {
	return r.X + r.Width
}

// Bottom 返回下边缘的y坐标。
func (r *Rect) Bottom() int {
	return r.Y + r.Height
}

// ContainsRect 判断指定矩形是否完全位于当前矩形内。
func (r *Rect) ContainsRect(rect Rect) bool {
	return r.X <= rect.X &&
		rect.X+rect.Width <= r.X+r.Width &&
		r.Y <= rect.Y &&
		rect.Y+rect.Height <= r.Y+r.Height
}

// IsEmpty 判断矩形的宽或高是否小于1。
func (r *Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects 判断两个矩形是否有重叠区域。
func (r *Rect) Intersects(rect Rect) bool {
	return rect.X < r.X+r.Width &&
		r.X < rect.X+rect.Width &&
		rect.Y < r.Y+r.Height &&
		r.Y < rect.Y+rect.Height
}

// Padded 返回在右侧和下侧各扩展 padding 后的矩形副本。
func (r Rect) Padded(padding int) Rect {
	if padding > 0 {
		r.Width += padding
		r.Height += padding
	}
	return r
}

func padSize(size *Size, padding int) {
	if padding <= 0 {
		return
	}
	size.Width += padding
	size.Height += padding
}

func unpadRect(rect *Rect, padding int) {
	if padding <= 0 {
		return
	}
	rect.Width -= padding
	rect.Height -= padding
}
