package rectpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomSize returns a size within the given minimum and maximum sizes.
func randomSize(rng *rand.Rand, id int, minSize, maxSize Size) Size {
	w := rng.Intn(maxSize.Width-minSize.Width) + minSize.Width
	h := rng.Intn(maxSize.Height-minSize.Height) + minSize.Height
	return NewSizeID(id, w, h)
}

// requireValidLayout checks that padded rectangles never overlap and that
// every rectangle lies within the bin.
func requireValidLayout(t *testing.T, p *Packer) {
	t.Helper()
	bin := NewRect(0, 0, p.MaxSize().Width, p.MaxSize().Height)
	rects := p.Rects()
	for i := range rects {
		require.Truef(t, bin.ContainsRect(rects[i]), "%s lies outside %s", rects[i].String(), bin.String())
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i].Padded(p.Padding()), rects[j].Padded(p.Padding())
			require.Falsef(t, a.Intersects(b), "%s and %s intersect", a.String(), b.String())
		}
	}
}

func TestPackRandomMultiBin(t *testing.T) {
	const (
		count       = 1024
		atlasWidth  = 1024
		atlasHeight = 1024
	)
	rng := rand.New(rand.NewSource(1))
	minSize := NewSize(8, 8)
	maxSize := NewSize(96, 96)

	unpacked := make([]Size, count)
	for i := range unpacked {
		unpacked[i] = randomSize(rng, i, minSize, maxSize)
	}
	SortSizes(unpacked, SortArea)

	for _, heuristic := range []Heuristic{
		BestAreaFit | SplitShorterLeftoverAxis,
		BestShortSideFit | SplitMinimizeArea,
		BestLongSideFit | SplitLongerAxis,
		FirstFit | SplitMaximizeArea,
	} {
		t.Run(heuristic.String(), func(t *testing.T) {
			remaining := append([]Size(nil), unpacked...)
			seen := make(map[int]bool, count)
			for bins := 0; len(remaining) > 0; bins++ {
				require.Less(t, bins, 10, "too many bins required")
				p, err := NewPacker(atlasWidth, atlasHeight, heuristic)
				require.NoError(t, err)
				p.AllowRotate(true)
				p.SetPadding(2)
				remaining = p.Pack(remaining...)
				require.NotEmpty(t, p.Rects())
				requireValidLayout(t, p)
				for _, r := range p.Rects() {
					require.False(t, seen[r.ID], "id %d placed twice", r.ID)
					seen[r.ID] = true
				}
			}
			assert.Len(t, seen, count)
		})
	}
}

func TestPackExactFitWithPadding(t *testing.T) {
	p, err := NewPacker(64, 64, DefaultHeuristic)
	require.NoError(t, err)
	p.SetPadding(4)

	unpacked := p.Pack(NewSizeID(1, 64, 64))
	assert.Empty(t, unpacked)
	require.Len(t, p.Rects(), 1)
	r := p.Rects()[0]
	assert.Equal(t, []int{0, 0, 64, 64, 1}, []int{r.X, r.Y, r.Width, r.Height, r.ID})
	assert.Equal(t, NewSize(64, 64), p.MinSize())
}

func TestPackTrailingPaddingOnly(t *testing.T) {
	p, err := NewPacker(100, 10, FirstFit)
	require.NoError(t, err)
	p.SetPadding(2)

	unpacked := p.Pack(NewSizeID(0, 10, 10), NewSizeID(1, 10, 10), NewSizeID(2, 10, 10))
	require.Empty(t, unpacked)
	rects := p.Rects()
	require.Len(t, rects, 3)
	assert.Equal(t, 0, rects[0].X)
	assert.Equal(t, 12, rects[1].X)
	assert.Equal(t, 24, rects[2].X)
	for _, r := range rects {
		assert.Equal(t, 0, r.Y)
	}
}

func TestPackRotation(t *testing.T) {
	p, err := NewPacker(10, 40, DefaultHeuristic)
	require.NoError(t, err)

	assert.Equal(t, []Size{NewSizeID(7, 40, 10)}, p.Pack(NewSizeID(7, 40, 10)))
	assert.Empty(t, p.Rects())

	p.AllowRotate(true)
	assert.Empty(t, p.Pack(NewSizeID(7, 40, 10)))
	require.Len(t, p.Rects(), 1)
	r := p.Rects()[0]
	assert.True(t, r.Rotated)
	assert.Equal(t, 10, r.Width)
	assert.Equal(t, 40, r.Height)
	assert.Equal(t, 7, r.ID)
}

func TestPackPrefersSmallestFreeRect(t *testing.T) {
	p, err := NewPacker(100, 100, BestAreaFit|SplitShorterLeftoverAxis)
	require.NoError(t, err)

	// a 60x60 first item leaves a 100x40 bottom strip and a 40x60 right strip
	require.Empty(t, p.Pack(NewSizeID(0, 60, 60)))
	require.Empty(t, p.Pack(NewSizeID(1, 30, 30)))

	// the right strip (60,0,40,60) wastes less than the bottom strip
	r := p.Rects()[1]
	require.Equal(t, 1, r.ID)
	assert.Equal(t, 60, r.X)
	assert.Equal(t, 0, r.Y)
	assert.False(t, r.Rotated)
}

func TestPackOversized(t *testing.T) {
	p, err := NewPacker(4096, 4096, DefaultHeuristic)
	require.NoError(t, err)
	p.AllowRotate(true)
	big := NewSizeID(3, 5000, 5000)
	assert.False(t, p.Fits(big))
	assert.Equal(t, []Size{big}, p.Pack(big))
	assert.True(t, p.Fits(NewSize(4096, 10)))
	assert.True(t, p.Fits(NewSize(10, 4096)))
}

func TestPackEachSizeTriedOnce(t *testing.T) {
	p, err := NewPacker(10, 10, DefaultHeuristic)
	require.NoError(t, err)
	// the second size does not fit after the first, the third still does
	unpacked := p.Pack(NewSizeID(0, 10, 5), NewSizeID(1, 10, 6), NewSizeID(2, 10, 5))
	assert.Equal(t, []Size{NewSizeID(1, 10, 6)}, unpacked)
	assert.Len(t, p.Rects(), 2)
	assert.Equal(t, 1.0, p.Used(false))
}

func TestMergeFreeList(t *testing.T) {
	merged := mergeFreeList([]Rect{
		NewRect(0, 10, 10, 5),
		NewRect(20, 0, 5, 5),
		NewRect(0, 0, 10, 10),
		NewRect(10, 0, 10, 15),
	})
	require.Len(t, merged, 2)
	assert.Equal(t, NewRect(0, 0, 20, 15), merged[0])
	assert.Equal(t, NewRect(20, 0, 5, 5), merged[1])
}

func TestSplitAlongAxis(t *testing.T) {
	free := NewRect(0, 0, 100, 50)
	placed := NewRect(0, 0, 30, 20)

	bottom, right := splitAlongAxis(free, placed, true)
	assert.Equal(t, NewRect(0, 20, 100, 30), bottom)
	assert.Equal(t, NewRect(30, 0, 70, 20), right)

	bottom, right = splitAlongAxis(free, placed, false)
	assert.Equal(t, NewRect(0, 20, 30, 30), bottom)
	assert.Equal(t, NewRect(30, 0, 70, 50), right)

	rects := guillotineSplit([]Rect{NewRect(0, 0, 30, 50)}, 0, NewRect(0, 0, 30, 20), DefaultHeuristic)
	assert.Equal(t, []Rect{NewRect(0, 20, 30, 30)}, rects, "degenerate remainders are dropped")
}

func TestResolveHeuristic(t *testing.T) {
	h, err := ResolveHeuristic("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultHeuristic, h)

	h, err = ResolveHeuristic("bestshortsidefit", "MinimizeArea")
	require.NoError(t, err)
	assert.Equal(t, BestShortSideFit, h.Fit())
	assert.Equal(t, SplitMinimizeArea, h.Split())
	assert.Equal(t, "BestShortSideFit/MinimizeArea", h.String())

	_, err = ResolveHeuristic("MaxRects", "")
	assert.Error(t, err)
	_, err = ResolveHeuristic("", "Diagonal")
	assert.Error(t, err)
}

func TestNewPackerRejectsEmptyBin(t *testing.T) {
	_, err := NewPacker(0, 10, DefaultHeuristic)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	p, err := NewPacker(50, 50, DefaultHeuristic)
	require.NoError(t, err)
	p.SetPadding(2)
	require.Empty(t, p.Pack(NewSizeID(0, 20, 20), NewSizeID(1, 20, 20), NewSizeID(2, 10, 10)))
	require.NoError(t, p.Validate())

	// a rect touching the previous one without its trailing gap
	p.packed = append(p.packed, Rect{Point: Point{X: 21, Y: 0}, Size: NewSizeID(3, 5, 5)})
	assert.ErrorContains(t, p.Validate(), "overlap")

	p.packed = p.packed[:3]
	p.packed = append(p.packed, Rect{Point: Point{X: 60, Y: 0}, Size: NewSizeID(4, 5, 5)})
	assert.ErrorContains(t, p.Validate(), "outside")
}
