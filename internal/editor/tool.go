package editor

import (
	"fmt"
	"strings"
)

// Tool is the active editing mode.
type Tool int

const (
	ToolNone Tool = iota
	ToolDraw
	ToolText
	ToolShape
	// ToolImage is momentary: selecting it opens the picker and leaves the
	// active tool as it was.
	ToolImage
	ToolCrop
)

var toolNames = [...]string{"none", "draw", "text", "shape", "image", "crop"}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Tools lists every tool in toolbar order.
func Tools() []Tool {
	return []Tool{ToolNone, ToolDraw, ToolText, ToolShape, ToolImage, ToolCrop}
}

// ParseTool accepts a tool name as printed by String.
func ParseTool(s string) (Tool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range toolNames {
		if n == s {
			return Tool(i), nil
		}
	}
	switch s {
	case "pen", "freehand":
		return ToolDraw, nil
	case "gallery", "picture":
		return ToolImage, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}
