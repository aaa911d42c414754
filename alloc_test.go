package dumd

import (
	"bytes"
	"slices"
	"testing"
)

func TestRenderWrappedAllocations(t *testing.T) {
	doc, err := ParseDocument(readSample(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	doc.Blocks = slices.Repeat(doc.Blocks, 4)
	allocs := testing.AllocsPerRun(100, func() {
		var out bytes.Buffer
		_ = RenderDocument(&out, doc, 80, DefaultTheme())
	})
	if allocs > 6000 {
		t.Fatalf("too many allocations per RenderDocument: got %.2f", allocs)
	}
}
