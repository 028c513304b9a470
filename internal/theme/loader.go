package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when no source provides the requested theme.
var ErrNotFound = errors.New("theme not found")

// Loader handles loading themes from various sources.
type Loader struct {
	ConfigDir string
	SystemDir string
	// Custom holds themes defined inline in the rc file. They shadow
	// every other source.
	Custom map[string]*Theme
}

// NewLoader creates a new Loader with standard paths.
func NewLoader(custom map[string]*Theme) *Loader {
	home, _ := os.UserHomeDir()
	return &Loader{
		ConfigDir: filepath.Join(home, ".config", "sketchpad", "themes"),
		SystemDir: "/usr/share/sketchpad/themes",
		Custom:    custom,
	}
}

// Load attempts to load a theme by name or path.
// Order:
// 1. Themes defined in the config file.
// 2. If it's a file path that exists, load it.
// 3. Check embedded themes.
// 4. Check ConfigDir.
// 5. Check SystemDir.
// An empty name yields Default.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" {
		return Default(), nil
	}
	if t, ok := l.Custom[name]; ok {
		return t, nil
	}
	if _, err := os.Stat(name); err == nil {
		return loadFS(os.DirFS(filepath.Dir(name)), filepath.Base(name))
	}

	filename := name
	if !strings.HasSuffix(filename, ".theme") {
		filename += ".theme"
	}
	if t, err := loadFS(EmbeddedThemes, "defaults/"+filename); !errors.Is(err, fs.ErrNotExist) {
		return t, err
	}
	for _, dir := range []string{l.ConfigDir, l.SystemDir} {
		if dir == "" {
			continue
		}
		if t, err := loadFS(os.DirFS(dir), filename); !errors.Is(err, fs.ErrNotExist) {
			return t, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func loadFS(fsys fs.FS, name string) (*Theme, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
	return t, nil
}
