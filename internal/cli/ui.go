package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives all status output; tests swap it for a buffer.
var stdout io.Writer = os.Stdout

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared styles for command output and the terminal editor.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleLink      = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

func printStatus(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(stdout, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus(styleIconSuccess, iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(styleIconError, iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(styleIconWarning, iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(styleIconInfo, iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile points at a written file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints node and edge counts on one line.
func printStats(nodeCount, edgeCount int) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(formatStats(nodeCount, edgeCount)))
}

func formatStats(nodeCount, edgeCount int) string {
	nodes, edges := "nodes", "edges"
	if nodeCount == 1 {
		nodes = "node"
	}
	if edgeCount == 1 {
		edges = "edge"
	}
	return fmt.Sprintf("%d %s · %d %s", nodeCount, nodes, edgeCount, edges)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
