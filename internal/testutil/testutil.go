// Package testutil provides shared skip helpers and fixture builders for
// morphology integration tests.
//
// Each Require* helper calls t.Skip with a clear human-readable reason when
// the named prerequisite is absent, so integration tests remain runnable in
// partial environments without failing noisily.
//
// Typical usage:
//
//	func TestMyIntegration(t *testing.T) {
//	    testutil.RequireFixtureImage(t, "checkerboard.png")
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-morphology/internal/image"
)

// FixtureDir is the testdata directory integration tests load sample images
// from, relative to the repository root.
const FixtureDir = "testdata/images"

// RequireFixtureImage skips the test if the named fixture image cannot be
// found under FixtureDir relative to the current working directory.
func RequireFixtureImage(t testing.TB, name string) string {
	t.Helper()
	p := filepath.Join(FixtureDir, name)
	if _, err := os.Stat(p); err != nil {
		t.Skipf("fixture image %q not available: %v", p, err)
	}
	return p
}

// NewCheckerboard builds a synthetic w x h image alternating fg/bg Pixel
// values in 1-pixel squares, useful for exercising morphology operations
// without depending on fixture files.
func NewCheckerboard(w, h int, fg, bg image.Pixel) *image.MemImage {
	m := image.New(w, h, fg.HasAlpha || bg.HasAlpha)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				m.Set(x, y, fg)
			} else {
				m.Set(x, y, bg)
			}
		}
	}
	return m
}

// NewSolid builds a w x h image filled with a single Pixel value.
func NewSolid(w, h int, p image.Pixel) *image.MemImage {
	m := image.New(w, h, p.HasAlpha)
	m.Fill(p)
	return m
}
