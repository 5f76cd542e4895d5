package imaging

import "testing"

func TestLinePositionsVertical(t *testing.T) {
	// Two vertical lines, the second three pixels thick.
	mask := maskFrom(t,
		".X...XXX..",
		".X...XXX..",
		".X...XXX..",
	)
	got := LinePositions(mask, Vertical)
	want := []int{1, 6}
	if len(got) != len(want) {
		t.Fatalf("LinePositions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LinePositions() = %v, want %v", got, want)
			break
		}
	}
}

func TestLinePositionsHorizontal(t *testing.T) {
	mask := maskFrom(t,
		"XXXXX",
		".....",
		".....",
		"XXXXX",
		"XXXXX",
	)
	got := LinePositions(mask, Horizontal)
	if len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Errorf("LinePositions() = %v, want [0 3]", got)
	}
}

func TestLinePositionsEmptyMask(t *testing.T) {
	mask := maskFrom(t, "....", "....")
	if got := LinePositions(mask, Vertical); len(got) != 0 {
		t.Errorf("LinePositions() on empty mask = %v, want none", got)
	}
}

func TestHasLine(t *testing.T) {
	// A vertical line covering 3 of 4 strip rows.
	strip := maskFrom(t,
		".X.",
		".X.",
		".X.",
		"...",
	)

	if !HasLine(strip, 3, Vertical) {
		t.Error("HasLine(minLen=3) = false, want true")
	}
	if HasLine(strip, 4, Vertical) {
		t.Error("HasLine(minLen=4) = true, want false")
	}
}

func TestHasLineHorizontal(t *testing.T) {
	strip := maskFrom(t,
		"XX....",
		"..XX..",
	)
	// Occupied columns count toward the line even when split across rows.
	if !HasLine(strip, 4, Horizontal) {
		t.Error("HasLine(minLen=4) = false, want true")
	}
	if HasLine(strip, 5, Horizontal) {
		t.Error("HasLine(minLen=5) = true, want false")
	}
}

func TestExpandTextBlocksFusesWords(t *testing.T) {
	// Two ink words 4px apart on a white page.
	page := maskFrom(t,
		"..........",
		"..........",
		"..........",
	)
	for i := range page.Pix {
		page.Pix[i] = 255
	}
	for _, x := range []int{1, 2, 6, 7} {
		page.Pix[1*page.Stride+x] = 0
	}

	fused := ExpandTextBlocks(page, 9, 1)
	l := LabelComponents(fused)
	if len(l.Components) != 1 {
		t.Errorf("got %d components after expansion, want 1", len(l.Components))
	}

	separate := ExpandTextBlocks(page, 3, 1)
	l = LabelComponents(separate)
	if len(l.Components) != 2 {
		t.Errorf("got %d components with narrow kernel, want 2", len(l.Components))
	}
}
