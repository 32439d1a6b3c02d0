package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Target label constants.
const (
	AchievedValue = "Achieved" // every target met
	ShortValue    = "Short"    // at least one target missed
)

// Color variables for console output.
var (
	AchievedColor = color.New(color.FgGreen, color.Bold)
	ShortColor    = color.New(color.FgYellow)
	GapColor      = color.New(color.FgRed)
)

// GetPlainLabel returns a plain text label for whether a result meets its targets.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(achieved bool) string {
	if achieved {
		return AchievedValue
	}
	return ShortValue
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(achieved bool) string {
	text := GetPlainLabel(achieved)
	if achieved {
		return AchievedColor.Sprint(text)
	}
	return ShortColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetPinnedDBFilePath returns the path to the SQLite DB file for pinned storage.
func GetPinnedDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".loadout_pinned.db"
	}
	return filepath.Join(homeDir, ".loadout_pinned.db")
}

// TruncateName truncates a name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so the ellipsis leaves room for content.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
