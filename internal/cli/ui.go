package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/webgraph/pkg/config"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan      = lipgloss.Color("36")                         // spinners, headings
	colorGreen     = lipgloss.Color("35")                         // success, cache hits
	colorRed       = lipgloss.Color("167")                        // errors
	colorBlue      = lipgloss.Color("75")                         // suggested commands
	colorWhite     = lipgloss.Color("255")                        // values
	colorGray      = lipgloss.Color("245")                        // secondary text
	colorDim       = lipgloss.Color("240")                        // muted text
	colorHighlight = lipgloss.Color(config.DefaultHighlightColor) // hover highlight, as drawn in frames
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand   = lipgloss.NewStyle().Foreground(colorBlue)
	styleHighlight = lipgloss.NewStyle().Foreground(colorHighlight)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints graph size and optional tags on one line, for example
// "3 nodes · 2 edges · cached".
func printStats(nodes, edges int, tags ...string) {
	parts := []string{
		StyleDim.Render(plural(nodes, "node")),
		StyleDim.Render(plural(edges, "edge")),
	}
	parts = append(parts, tags...)
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// cacheTag renders whether a result came from the layout cache.
func cacheTag(hit bool) string {
	if hit {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}

// highlightTag renders the size of a hover highlight.
func highlightTag(node string, nodes, edges int) string {
	return styleHighlight.Render(fmt.Sprintf("%s: %s, %s", node, plural(nodes, "node"), plural(edges, "edge")))
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Utilities
// =============================================================================

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
