package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value, or Key: Value inside themes
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.Set(currentTheme, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "text":
			err = setTextField(&cfg.Text, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "export_format":
		if _, err = board.ParseFormat(value); err == nil {
			cfg.ExportFormat = strings.ToLower(value)
		}
	case "jpeg_quality":
		cfg.JPEGQuality, err = parseInt(key, value, 1, 100)
	case "background":
		if _, err = board.ParseColor(value); err == nil {
			cfg.Background = value
		}
	case "color":
		if _, err = board.ParseColor(value); err == nil {
			cfg.Color = value
		}
	case "width":
		cfg.Width, err = parseInt(key, value, 1, 0)
	case "fill":
		cfg.Fill, err = parseBool(key, value)
	case "canvas_width":
		cfg.CanvasWidth, err = parseInt(key, value, 1, 0)
	case "canvas_height":
		cfg.CanvasHeight, err = parseInt(key, value, 1, 0)
	}
	return err
}

func setTextField(t *Text, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "size":
		t.Size, err = strconv.ParseFloat(value, 64)
		if err == nil && t.Size <= 0 {
			err = fmt.Errorf("size must be positive")
		}
	case "family":
		t.Family = value
	case "weight":
		t.Weight = value
	case "color":
		if _, err = board.ParseColor(value); err == nil {
			t.Color = value
		}
	case "underline":
		t.Underline, err = parseBool(key, value)
	case "border":
		t.Border, err = parseBool(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

// parseInt bounds the value to [lo, hi]; hi of zero means unbounded.
func parseInt(key, value string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < lo || (hi > 0 && n > hi) {
		return 0, fmt.Errorf("%s out of range: %d", key, n)
	}
	return n, nil
}
