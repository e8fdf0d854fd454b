package manifest

// Manifest is the top-level output of a jpegcore build.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	Quality     int              `json:"quality"`
	Rounding    string           `json:"rounding"` // "truncate" or "nearest"
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures build-time parameters for diagnostics.
type BuildInfo struct {
	Workers   int  `json:"workers"`
	DirectDCT bool `json:"direct_dct,omitempty"`
}

// Asset describes a single source image and its encoded planes.
type Asset struct {
	Original OriginalInfo `json:"original"`
	// Encoded is the size actually fed to the encoder (after --max-width).
	Encoded Dimensions `json:"encoded"`
	// Planes are Y, Cb, Cr in encoding order.
	Planes []PlaneStats `json:"planes"`
	// ReferenceJPG is the stdlib JPEG size at the same quality.
	ReferenceJPG int64 `json:"reference_jpeg,omitempty"`
	// Dump is the token dump path, relative to the manifest.
	Dump string `json:"dump,omitempty"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// Dimensions is a width/height pair.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PlaneStats summarises one encoded plane.
type PlaneStats struct {
	Name       string `json:"name"` // "Y", "Cb", "Cr"
	Kind       string `json:"kind"` // "Luminance" or "Chrominance"
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Cols       int    `json:"cols"`
	Rows       int    `json:"rows"`
	Blocks     int    `json:"blocks"`
	ZeroBlocks int    `json:"zero_blocks"` // blocks whose coefficients are all zero
	Tokens     int    `json:"tokens"`      // sentinels included
	NonZero    int    `json:"nonzero"`     // non-zero quantized coefficients
	Digest     string `json:"digest"`      // xxhash64 of the token stream
}

// Stats aggregates build metrics.
type Stats struct {
	TotalInputBytes     int64 `json:"total_input_bytes"`
	TotalReferenceBytes int64 `json:"total_reference_bytes"`
	TotalAssets         int   `json:"total_assets"`
	TotalBlocks         int   `json:"total_blocks"`
	TotalZeroBlocks     int   `json:"total_zero_blocks"`
	TotalTokens         int   `json:"total_tokens"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
