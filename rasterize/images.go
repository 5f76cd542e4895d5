package rasterize

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"

	"github.com/tsawler/scanlayout/imaging"
)

// ImageSource serves already-rasterized scans: a single image file or a
// directory of page images ordered by file name.
type ImageSource struct {
	paths []string
}

// NewImages opens an image file, or a directory of .png/.jpg/.jpeg pages,
// as a page source.
func NewImages(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("rasterize: stat %s: %w", path, err)
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("rasterize: read dir %s: %w", path, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(entry.Name()) {
			case ".png", ".jpg", ".jpeg":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
		if len(paths) == 0 {
			return nil, fmt.Errorf("rasterize: no page images in %s", path)
		}
	} else {
		paths = []string{path}
	}
	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

// Render decodes the page image at index. Scans are already rasterized, so
// dpi is ignored.
func (s *ImageSource) Render(index, dpi int) (*image.Gray, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, fmt.Errorf("rasterize: open %s: %w", s.paths[index], err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("rasterize: decode %s: %w", s.paths[index], err)
	}
	return imaging.Grayscale(img), nil
}

func (s *ImageSource) Close() error {
	return nil
}
