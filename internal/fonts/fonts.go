package fonts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

const (
	DefaultFamily     = "NanumGothic"
	DefaultRegularURL = "https://fonts.gstatic.com/ea/nanumgothic/v5/NanumGothic-Regular.ttf"
	DefaultBoldURL    = "https://fonts.gstatic.com/ea/nanumgothic/v5/NanumGothic-ExtraBold.ttf"

	// CoreFamily is the built-in PDF font used when no TrueType font loads.
	CoreFamily = "Helvetica"

	maxFontBytes = 32 << 20
)

var (
	ErrNoUsableFont = errors.New("no usable font")
	ErrFontMissing  = errors.New("font not available")
)

// Set is a resolved font family. A core set carries no font bytes.
type Set struct {
	Family  string
	Regular []byte
	Bold    []byte
}

func CoreSet() Set {
	return Set{Family: CoreFamily}
}

func (s Set) Core() bool {
	return len(s.Regular) == 0
}

// BoldOrRegular returns the bold face, falling back to the regular one.
func (s Set) BoldOrRegular() []byte {
	if len(s.Bold) > 0 {
		return s.Bold
	}
	return s.Regular
}

type Source interface {
	Name() string
	Load(ctx context.Context) (Set, error)
}

// RemoteSource downloads TrueType fonts over HTTP.
type RemoteSource struct {
	Family     string
	RegularURL string
	BoldURL    string
	Client     *http.Client
}

func NewRemoteSource(regularURL, boldURL string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		Family:     DefaultFamily,
		RegularURL: regularURL,
		BoldURL:    boldURL,
		Client:     &http.Client{Timeout: timeout},
	}
}

func (s *RemoteSource) Name() string { return "remote" }

func (s *RemoteSource) Load(ctx context.Context) (Set, error) {
	if s.RegularURL == "" {
		return Set{}, fmt.Errorf("%w: remote regular url is empty", ErrFontMissing)
	}
	regular, err := s.fetch(ctx, s.RegularURL)
	if err != nil {
		return Set{}, err
	}
	set := Set{Family: s.Family, Regular: regular}
	if s.BoldURL != "" {
		// a missing bold face is tolerated
		if bold, err := s.fetch(ctx, s.BoldURL); err == nil {
			set.Bold = bold
		}
	}
	return set, nil
}

func (s *RemoteSource) fetch(ctx context.Context, url string) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build font request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch font %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrFontMissing, url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontBytes))
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", url, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrFontMissing, url)
	}
	return data, nil
}

// FileSource reads TrueType fonts from local paths.
type FileSource struct {
	Family      string
	RegularPath string
	BoldPath    string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Load(_ context.Context) (Set, error) {
	if s.RegularPath == "" {
		return Set{}, fmt.Errorf("%w: regular font path is empty", ErrFontMissing)
	}
	regular, err := os.ReadFile(s.RegularPath)
	if err != nil {
		return Set{}, fmt.Errorf("read font %s: %w", s.RegularPath, err)
	}
	family := s.Family
	if family == "" {
		family = DefaultFamily
	}
	set := Set{Family: family, Regular: regular}
	if s.BoldPath != "" {
		if bold, err := os.ReadFile(s.BoldPath); err == nil {
			set.Bold = bold
		}
	}
	return set, nil
}

// Resolver walks its sources in order and caches the first success. When
// every source fails it falls back to the core font, provided all texts
// can be encoded in Windows-1252.
type Resolver struct {
	sources []Source
	log     zerolog.Logger

	mu     sync.Mutex
	cached *Set
}

func NewResolver(log zerolog.Logger, sources ...Source) *Resolver {
	return &Resolver{sources: sources, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, texts []string) (Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cached != nil {
		return *r.cached, nil
	}

	var lastErr error
	for _, src := range r.sources {
		if err := ctx.Err(); err != nil {
			return Set{}, err
		}
		set, err := src.Load(ctx)
		if err != nil {
			r.log.Warn().Err(err).Str("source", src.Name()).Msg("font source failed")
			lastErr = err
			continue
		}
		r.log.Info().Str("source", src.Name()).Str("family", set.Family).Bool("bold", len(set.Bold) > 0).Msg("font resolved")
		r.cached = &set
		return set, nil
	}

	if text, ok := firstUnencodable(texts); ok {
		if lastErr != nil {
			return Set{}, fmt.Errorf("%w: %q needs a unicode font: %w", ErrNoUsableFont, text, lastErr)
		}
		return Set{}, fmt.Errorf("%w: %q needs a unicode font", ErrNoUsableFont, text)
	}
	return CoreSet(), nil
}

// CoreCompatible reports whether s can be drawn with the core font.
func CoreCompatible(s string) bool {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return false
		}
	}
	return true
}

func firstUnencodable(texts []string) (string, bool) {
	for _, t := range texts {
		if !CoreCompatible(t) {
			return t, true
		}
	}
	return "", false
}
