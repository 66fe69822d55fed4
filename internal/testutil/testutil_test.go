package testutil_test

import (
	"os"
	"runtime"
	"testing"

	"github.com/example/go-morphology/internal/image"
	"github.com/example/go-morphology/internal/testutil"
)

func TestRequireFixtureImage_SkipsWhenAbsent(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) }) //nolint:errcheck
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}

	if !captureSkip(func(tb testing.TB) { testutil.RequireFixtureImage(tb, "missing.png") }) {
		t.Error("expected RequireFixtureImage to skip when the fixture is absent")
	}
}

func TestNewCheckerboard(t *testing.T) {
	fg := image.Pixel{R: 255}
	bg := image.Pixel{R: 0}
	m := testutil.NewCheckerboard(4, 4, fg, bg)

	if m.At(0, 0) != fg {
		t.Errorf("expected (0,0) to be fg, got %+v", m.At(0, 0))
	}
	if m.At(1, 0) != bg {
		t.Errorf("expected (1,0) to be bg, got %+v", m.At(1, 0))
	}
}

func TestNewSolid(t *testing.T) {
	p := image.Pixel{R: 10, G: 20, B: 30}
	m := testutil.NewSolid(3, 2, p)

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != p {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, m.At(x, y), p)
			}
		}
	}
}

// captureSkip runs fn in a fresh goroutine with a stub TB and returns true if
// the function called Skip/Skipf. Because the real testing.T.Skipf calls
// runtime.Goexit(), we run fn in an isolated goroutine so Goexit only
// terminates that goroutine and does not propagate to the parent test.
func captureSkip(fn func(testing.TB)) (skipped bool) {
	stub := &stubTB{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(stub)
	}()
	<-done
	return stub.skipped
}

// stubTB is a minimal testing.TB that records Skip calls and terminates the
// calling goroutine (via runtime.Goexit) exactly as the real testing.T does.
type stubTB struct {
	testing.TB // intentionally nil — only Skip methods are called
	skipped    bool
}

func (s *stubTB) Helper()                 {}
func (s *stubTB) Log(_ ...any)            {}
func (s *stubTB) Logf(_ string, _ ...any) {}

func (s *stubTB) Skip(_ ...any) {
	s.skipped = true
	runtime.Goexit()
}

func (s *stubTB) Skipf(_ string, _ ...any) {
	s.skipped = true
	runtime.Goexit()
}

func (s *stubTB) SkipNow() {
	s.skipped = true
	runtime.Goexit()
}
