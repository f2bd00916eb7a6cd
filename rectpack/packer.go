package rectpack

import (
	"fmt"
)

// DefaultSize 定义了单个图集的默认最大宽度/高度值，
// 基于现代GPU普遍支持的最大纹理尺寸。
const DefaultSize = 4096

// Packer 包含一个固定尺寸箱子的状态。空闲区域以互不重叠的矩形列表保存，
// 每次放置后按断头台方式切分。
//
// Packer 只用于一轮打包：放不下的尺寸交还给调用方，由调用方交给新的 Packer 重试。
type Packer struct {
	maxWidth  int
	maxHeight int

	// padding 每个矩形右侧和下侧预留的空隙
	//
	// 默认值：0
	padding int

	// allowRotate 是否允许旋转矩形以获得更好的放置
	//
	// 默认值：false
	allowRotate bool

	heuristic Heuristic
	score     scoreFunc

	// Merge 每次放置后合并共享整条边的空闲矩形
	//
	// 默认值：true
	Merge bool

	freeRects []Rect
	packed    []Rect
	usedArea  int
}

// NewPacker 创建一个 maxWidth x maxHeight 的打包器
//
//	maxWidth - 箱子宽度(必须大于0)
//	maxHeight - 箱子高度(必须大于0)
//	heuristic - 选择规则与切分规则的组合
func NewPacker(maxWidth, maxHeight int, heuristic Heuristic) (*Packer, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("width and height must be greater than 0 (given %vx%v)", maxWidth, maxHeight)
	}
	p := &Packer{
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		heuristic: heuristic,
		score:     scoreFor(heuristic),
		Merge:     true,
	}
	p.Reset()
	return p, nil
}

// Reset 清除所有已放置矩形，空闲列表恢复为整个箱子。
//
// 空闲区域在两个方向上各加上 padding：贴着右边或下边的矩形，
// 其尾部空隙落在箱子之外，不占用箱子空间。
func (p *Packer) Reset() {
	p.packed = p.packed[:0]
	p.usedArea = 0
	p.freeRects = append(p.freeRects[:0], NewRect(0, 0, p.maxWidth+max(p.padding, 0), p.maxHeight+max(p.padding, 0)))
}

// SetPadding 设置矩形尾部空隙并重置打包器
func (p *Packer) SetPadding(padding int) {
	p.padding = max(padding, 0)
	p.Reset()
}

// Padding 返回矩形尾部空隙
func (p *Packer) Padding() int {
	return p.padding
}

// AllowRotate 设置是否允许矩形旋转90度
func (p *Packer) AllowRotate(enabled bool) {
	p.allowRotate = enabled
}

// Fits 判断 size 能否放入一个空箱子
func (p *Packer) Fits(size Size) bool {
	if size.Width <= p.maxWidth && size.Height <= p.maxHeight {
		return true
	}
	return p.allowRotate && size.Height <= p.maxWidth && size.Width <= p.maxHeight
}

// Pack 按给定顺序将每个尺寸对当前空闲列表尝试一次
//
// 返回值：
//
//	未能放置的尺寸，保持原有顺序
func (p *Packer) Pack(sizes ...Size) []Size {
	var unpacked []Size
	for _, size := range sizes {
		footprint := size
		padSize(&footprint, p.padding)
		c, ok := findPosition(p.freeRects, footprint.Width, footprint.Height, p.allowRotate, p.score)
		if !ok {
			unpacked = append(unpacked, size)
			continue
		}
		node := Rect{Point: p.freeRects[c.index].Point, Size: footprint}
		if c.rotated {
			node.Size = footprint.Transpose()
			node.Rotated = true
		}
		p.freeRects = guillotineSplit(p.freeRects, c.index, node, p.heuristic)
		if p.Merge {
			p.freeRects = mergeFreeList(p.freeRects)
		}
		unpadRect(&node, p.padding)
		p.usedArea += node.Area()
		p.packed = append(p.packed, node)
	}
	return unpacked
}

// Rects 按放置顺序返回不含空隙的已放置矩形。
// 切片归打包器所有，修改前请先复制。
func (p *Packer) Rects() []Rect {
	return p.packed
}

// Validate 检查每个已放置矩形(含尾部空隙)都位于箱子内且互不重叠
func (p *Packer) Validate() error {
	bin := NewRect(0, 0, p.maxWidth+p.padding, p.maxHeight+p.padding)
	for i := range p.packed {
		a := p.packed[i].Padded(p.padding)
		if !bin.ContainsRect(a) {
			return fmt.Errorf("rect %d %s lies outside the bin %s", a.ID, a.String(), bin.String())
		}
		for j := i + 1; j < len(p.packed); j++ {
			if b := p.packed[j].Padded(p.padding); a.Intersects(b) {
				return fmt.Errorf("rects %d and %d overlap", a.ID, b.ID)
			}
		}
	}
	return nil
}

// MaxSize 返回箱子尺寸
func (p *Packer) MaxSize() Size {
	return NewSize(p.maxWidth, p.maxHeight)
}

// MinSize 返回包含所有已放置矩形的最小尺寸，
// 不包含最后一列/行的尾部空隙
func (p *Packer) MinSize() Size {
	var size Size
	for _, rect := range p.packed {
		size.Width = max(size.Width, rect.Right())
		size.Height = max(size.Height, rect.Bottom())
	}
	return size
}

// Used 返回已用面积比例，范围 0.0 到 1.0
//
//	current - true: 相对于 MinSize; false: 相对于整个箱子
func (p *Packer) Used(current bool) float64 {
	size := p.MaxSize()
	if current {
		size = p.MinSize()
	}
	if size.Area() == 0 {
		return 0
	}
	return float64(p.usedArea) / float64(size.Area())
}
