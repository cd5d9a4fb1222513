package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/example/snapedit/internal/rasterizer"
	"github.com/example/snapedit/internal/render"
	"github.com/example/snapedit/internal/scene"
	"github.com/example/snapedit/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if themeName, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "style":
			err = setStyleField(&cfg.Style, key, value)
		case currentSection == "export":
			err = setExportField(&cfg.Export, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if currentSection == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", currentSection, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "canvas_size":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.CanvasSize = n
	case "history_limit":
		n, err := parsePositive(key, value)
		if err != nil {
			return err
		}
		cfg.HistoryLimit = n
	}
	return nil
}

func setStyleField(s *scene.Style, key, value string) error {
	switch key {
	case "stroke_color", "fill_color":
		c, err := scene.ParseColor(value)
		if err != nil {
			return fmt.Errorf("invalid color for key %s: %w", key, err)
		}
		if key == "stroke_color" {
			s.StrokeColor = c
		} else {
			s.FillColor = c
		}
	case "stroke_width":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		s.StrokeWidth = scene.ClampStrokeWidth(f)
	case "font_size":
		f, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		s.FontSize = scene.ClampFontSize(f)
	case "filled":
		b, err := parseBool(key, value)
		if err != nil {
			return err
		}
		s.Filled = b
	}
	return nil
}

func setExportField(e *Export, key, value string) error {
	var err error
	switch key {
	case "format":
		e.Format, err = rasterizer.ParseFormat(value)
	case "quality":
		var q float64
		if q, err = parseFloat(key, value); err == nil {
			if q <= 0 || q > 1 {
				return fmt.Errorf("quality %v out of range (0,1]", q)
			}
			e.Quality = q
		}
	case "settle":
		e.Settle, err = parseDuration(key, value)
	case "stage_settle":
		e.StageSettle, err = parseDuration(key, value)
	case "shadow":
		e.Shadow, err = render.ParseShadow(value)
	case "copy":
		e.Copy, err = parseBool(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch key {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "crop":
		n.Crop = b
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

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}

func parsePositive(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("key %s wants a positive integer, got %q", key, value)
	}
	return n, nil
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for key %s: %w", key, err)
	}
	return d, nil
}
