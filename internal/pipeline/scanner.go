package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Source represents a discovered image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the asset key (relpath without extension).
	Key string
	// Format is the source format (png, jpeg, webp, gif, bmp, tiff).
	Format string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists recognized image file extensions.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".tif":  true,
}

// IsImagePath reports whether path has a recognized image extension.
func IsImagePath(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanImages walks the input directory and returns all image sources,
// sorted by key.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if strings.HasPrefix(info.Name(), ".") && path != inputDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImagePath(path) {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		sources = append(sources, newSource(path, relPath, info.Size()))
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].Key < sources[j].Key })

	// Keys drop the extension, so a.png and a.jpg would share an asset.
	for i := 1; i < len(sources); i++ {
		if sources[i].Key == sources[i-1].Key {
			return nil, fmt.Errorf("duplicate asset key %q: %s and %s",
				sources[i].Key, sources[i-1].RelPath, sources[i].RelPath)
		}
	}
	return sources, nil
}

// SourceFromFile describes a single file as a Source keyed by its base name.
func SourceFromFile(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, err
	}
	return newSource(abs, filepath.Base(abs), info.Size()), nil
}

func newSource(absPath, relPath string, size int64) Source {
	ext := strings.ToLower(filepath.Ext(relPath))

	// Key: relative path without extension, using forward slashes.
	key := filepath.ToSlash(strings.TrimSuffix(relPath, filepath.Ext(relPath)))

	// Normalize format name.
	format := strings.TrimPrefix(ext, ".")
	switch format {
	case "jpg":
		format = "jpeg"
	case "tif":
		format = "tiff"
	}

	return Source{
		AbsPath: absPath,
		RelPath: filepath.ToSlash(relPath),
		Key:     key,
		Format:  format,
		Size:    size,
	}
}
