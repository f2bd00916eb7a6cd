package rectpack

import (
	"cmp"
	"slices"
)

// SortFunc 比较两个尺寸的排序顺序
//
//	-1: a 排在 b 之前
//	 0: 相等
//	 1: a 排在 b 之后
type SortFunc func(a, b Size) int

// SortArea 按面积从大到小排序
func SortArea(a, b Size) int {
	return cmp.Compare(b.Area(), a.Area())
}

// SortSizes 使用 compare 原地稳定排序，相等元素保持原有顺序
func SortSizes(sizes []Size, compare SortFunc) {
	slices.SortStableFunc(sizes, compare)
}
