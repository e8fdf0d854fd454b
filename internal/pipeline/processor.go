package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/jpegcore-cli/internal/colorspace"
	"github.com/AnyUserName/jpegcore-cli/internal/dump"
	"github.com/AnyUserName/jpegcore-cli/internal/encoder"
	"github.com/AnyUserName/jpegcore-cli/internal/hasher"
	"github.com/AnyUserName/jpegcore-cli/internal/manifest"
	"github.com/AnyUserName/jpegcore-cli/internal/rle"
)

// processResult holds the result of processing a single source image.
type processResult struct {
	key   string
	asset manifest.Asset
	err   error
}

// Process decodes, optionally downscales and encodes a single source.
// When cfg.Dump is set the token dump is written under cfg.OutputDir and
// its relative path recorded in the asset.
func Process(src Source, cfg Config) (manifest.Asset, *encoder.Result, error) {
	img, err := LoadImage(src.AbsPath)
	if err != nil {
		return manifest.Asset{}, nil, err
	}
	bounds := img.Bounds()
	asset := manifest.Asset{
		Original: manifest.OriginalInfo{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: src.Format,
			Size:   src.Size,
		},
	}

	img = FitWidth(img, cfg.Profile.MaxWidth)
	asset.Encoded = manifest.Dimensions{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if cfg.Verbose && asset.Encoded.Width != bounds.Dx() {
		fmt.Fprintf(os.Stderr, "[jpegcore] %s: resized %dx%d → %dx%d\n",
			src.Key, bounds.Dx(), bounds.Dy(), asset.Encoded.Width, asset.Encoded.Height)
	}

	res, err := encoder.Encode(colorspace.FromImage(img), encoder.Options{
		Quality:   cfg.Profile.Quality,
		Rounding:  cfg.Profile.Rounding,
		Workers:   cfg.BlockWorkers,
		DirectDCT: cfg.DirectDCT,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return manifest.Asset{}, nil, fmt.Errorf("encode %s: %w", src.RelPath, err)
	}
	asset.Planes = Summarize(res)

	if cfg.Reference {
		n, err := encoder.ReferenceJPEGSize(img, res.Quality)
		if err != nil {
			return manifest.Asset{}, nil, fmt.Errorf("%s: %w", src.RelPath, err)
		}
		asset.ReferenceJPG = int64(n)
	}

	if cfg.Dump != DumpNone {
		relPath := dumpPath(src.Key, asset.Planes, cfg.Dump)
		outPath := filepath.Join(cfg.OutputDir, relPath)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return manifest.Asset{}, nil, fmt.Errorf("create dump dir: %w", err)
		}
		if err := dump.Write(outPath, res); err != nil {
			return manifest.Asset{}, nil, fmt.Errorf("dump %s: %w", relPath, err)
		}
		asset.Dump = relPath
	}

	return asset, res, nil
}

// processImage adapts Process to the batch worker loop.
func processImage(src Source, cfg Config) processResult {
	asset, _, err := Process(src, cfg)
	return processResult{key: src.Key, asset: asset, err: err}
}

// Summarize computes per-plane statistics and token digests for res.
func Summarize(res *encoder.Result) []manifest.PlaneStats {
	stats := make([]manifest.PlaneStats, 0, len(res.Planes))
	for _, p := range res.Planes {
		s := manifest.PlaneStats{
			Name:   p.Name,
			Kind:   p.Kind.String(),
			Width:  p.Width,
			Height: p.Height,
			Cols:   p.Cols,
			Rows:   p.Rows,
			Blocks: len(p.Blocks),
			Digest: hasher.TokenDigest(p.Blocks, 16),
		}
		for _, tokens := range p.Blocks {
			s.Tokens += len(tokens)
			s.NonZero += rle.NonZero(tokens)
			if rle.IsZeroBlock(tokens) {
				s.ZeroBlocks++
			}
		}
		stats = append(stats, s)
	}
	return stats
}

// dumpPath builds a content-addressed dump name: key.<hash>.tokens.json[.zst]
func dumpPath(key string, planes []manifest.PlaneStats, kind DumpKind) string {
	var digests []byte
	for _, p := range planes {
		digests = append(digests, p.Digest...)
	}
	name := fmt.Sprintf("%s.%s.tokens.json", key, hasher.ContentHash(digests, 8))
	if kind == DumpZstd {
		name += dump.ZstdExt
	}
	return filepath.ToSlash(name)
}
