package fonts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRemoteSourceLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/regular.ttf":
			_, _ = w.Write([]byte("regular-bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL+"/regular.ttf", srv.URL+"/bold.ttf", time.Second)
	set, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(set.Regular) != "regular-bytes" {
		t.Errorf("Regular = %q", set.Regular)
	}
	if len(set.Bold) != 0 {
		t.Errorf("Bold = %q, want empty", set.Bold)
	}
	if string(set.BoldOrRegular()) != "regular-bytes" {
		t.Errorf("BoldOrRegular() did not fall back to regular")
	}
}

func TestRemoteSourceStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewRemoteSource(srv.URL+"/x.ttf", "", time.Second).Load(context.Background())
	if !errors.Is(err, ErrFontMissing) {
		t.Fatalf("Load() error = %v, want ErrFontMissing", err)
	}
}

func TestFileSourceLoad(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "regular.ttf")
	bold := filepath.Join(dir, "bold.ttf")
	if err := os.WriteFile(regular, []byte("r"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bold, []byte("b"), 0o600); err != nil {
		t.Fatal(err)
	}

	set, err := (&FileSource{RegularPath: regular, BoldPath: bold}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if set.Family != DefaultFamily || string(set.Regular) != "r" || string(set.Bold) != "b" {
		t.Errorf("unexpected set %+v", set)
	}

	if _, err := (&FileSource{RegularPath: filepath.Join(dir, "missing.ttf")}).Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

type countingSource struct {
	calls atomic.Int32
	set   Set
	err   error
}

func (s *countingSource) Name() string { return "counting" }

func (s *countingSource) Load(context.Context) (Set, error) {
	s.calls.Add(1)
	return s.set, s.err
}

func TestResolverOrderAndCache(t *testing.T) {
	failing := &countingSource{err: ErrFontMissing}
	working := &countingSource{set: Set{Family: "Test", Regular: []byte("x")}}
	r := NewResolver(zerolog.Nop(), failing, working)

	for i := 0; i < 3; i++ {
		set, err := r.Resolve(context.Background(), []string{"견적서"})
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if set.Family != "Test" {
			t.Errorf("Family = %q", set.Family)
		}
	}
	if failing.calls.Load() != 1 || working.calls.Load() != 1 {
		t.Errorf("calls = %d/%d, want 1/1", failing.calls.Load(), working.calls.Load())
	}
}

func TestResolverCoreFallback(t *testing.T) {
	r := NewResolver(zerolog.Nop(), &countingSource{err: ErrFontMissing})

	set, err := r.Resolve(context.Background(), []string{"QUOTATION", "KRW 1,000", "Café"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !set.Core() || set.Family != CoreFamily {
		t.Errorf("expected core set, got %+v", set)
	}

	_, err = r.Resolve(context.Background(), []string{"견적서"})
	if !errors.Is(err, ErrNoUsableFont) {
		t.Fatalf("Resolve() error = %v, want ErrNoUsableFont", err)
	}
	if !errors.Is(err, ErrFontMissing) {
		t.Errorf("source error not preserved: %v", err)
	}
}

func TestCoreCompatible(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"Hello", true},
		{"€ 10", true},
		{"₩10,000", false},
		{"견적", false},
		{"", true},
	}
	for _, tt := range tests {
		if got := CoreCompatible(tt.in); got != tt.want {
			t.Errorf("CoreCompatible(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
