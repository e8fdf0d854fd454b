package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/jpegcore-cli/internal/manifest"
	"github.com/AnyUserName/jpegcore-cli/internal/profile"
	"github.com/AnyUserName/jpegcore-cli/internal/quant"
)

// DumpKind selects whether and how token dumps are written.
type DumpKind string

const (
	DumpNone DumpKind = ""
	DumpJSON DumpKind = "json"
	DumpZstd DumpKind = "zst"
)

// ParseDumpKind accepts "", "none", "json" or "zst".
func ParseDumpKind(s string) (DumpKind, error) {
	switch s {
	case "", "none":
		return DumpNone, nil
	case "json":
		return DumpJSON, nil
	case "zst", "zstd":
		return DumpZstd, nil
	}
	return DumpNone, fmt.Errorf("unknown dump format %q (want none, json or zst)", s)
}

// Config holds all parameters for a build pipeline run.
type Config struct {
	InputDir  string
	OutputDir string
	Profile   profile.Profile
	// Workers is the number of images encoded in parallel (0 = NumCPU).
	Workers int
	// BlockWorkers bounds block-row parallelism inside one image
	// (0 = NumCPU). Batch runs default it to 1.
	BlockWorkers int
	DirectDCT    bool
	Dump         DumpKind
	Reference    bool // record stdlib JPEG size per asset
	Verbose      bool
}

// Pipeline orchestrates batch encoding.
type Pipeline struct {
	cfg Config
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.BlockWorkers <= 0 {
		cfg.BlockWorkers = 1
	}
	cfg.Profile.Quality = quant.ClampQuality(cfg.Profile.Quality)
	return &Pipeline{cfg: cfg}
}

// Run executes the full build pipeline and returns the manifest.
func (p *Pipeline) Run() (*manifest.Manifest, error) {
	// Step 1: Scan for images.
	sources, err := ScanImages(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no images found in %s", p.cfg.InputDir)
	}

	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[jpegcore] found %d images\n", len(sources))
	}

	// Step 2: Encode images in parallel.
	results := make([]processResult, len(sources))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

	for i, src := range sources {
		wg.Add(1)
		go func(idx int, s Source) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if p.cfg.Verbose {
				fmt.Fprintf(os.Stderr, "[jpegcore] processing: %s\n", s.Key)
			}

			results[idx] = processImage(s, p.cfg)

			if p.cfg.Verbose && results[idx].err == nil {
				fmt.Fprintf(os.Stderr, "[jpegcore] done: %s (%d blocks)\n",
					s.Key, countBlocks(results[idx].asset))
			}
		}(i, src)
	}
	wg.Wait()

	// Step 3: Collect results into manifest.
	m := manifest.New(p.cfg.Profile.Name, p.cfg.Profile.Quality, p.cfg.Profile.Rounding.String())

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		m.Assets[r.key] = r.asset
	}

	// Report errors but don't fail the entire build for partial failures.
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "[jpegcore] error: %v\n", e)
		}
		if len(errs) == len(sources) {
			return nil, fmt.Errorf("all %d images failed to process", len(errs))
		}
		fmt.Fprintf(os.Stderr, "[jpegcore] warning: %d of %d images had errors\n",
			len(errs), len(sources))
	}

	m.BuildInfo = &manifest.BuildInfo{
		Workers:   p.cfg.Workers,
		DirectDCT: p.cfg.DirectDCT,
	}
	m.ComputeStats()
	return m, nil
}

func countBlocks(a manifest.Asset) int {
	var n int
	for _, pl := range a.Planes {
		n += pl.Blocks
	}
	return n
}
