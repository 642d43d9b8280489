// Package clipboard provides platform-specific clipboard operations.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Tools tried per platform, in order of preference.
var platformTools = map[string][][]string{
	"darwin": {
		{"pbcopy"},
	},
	"linux": {
		{"wl-copy"},                          // Wayland
		{"xclip", "-selection", "clipboard"}, // X11
		{"xsel", "--clipboard", "--input"},   // X11 alternative
	},
	"windows": {
		{"clip"},
	},
}

// lookPath and run are swapped out in tests.
var (
	lookPath = exec.LookPath
	run      = func(name string, args []string, input string) error {
		var stderr bytes.Buffer
		cmd := exec.Command(name, args...)
		cmd.Stdin = strings.NewReader(input)
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return fmt.Errorf("%w: %s", err, msg)
			}
			return err
		}
		return nil
	}
)

// CopyText copies plain text to the system clipboard.
func CopyText(text string) error {
	tools, ok := platformTools[runtime.GOOS]
	if !ok {
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return copyWith(tools, text)
}

func copyWith(tools [][]string, text string) error {
	var tried []string
	var failures []error
	for _, tool := range tools {
		tried = append(tried, tool[0])
		if !isCommandAvailable(tool[0]) {
			continue
		}
		err := run(tool[0], tool[1:], text)
		if err == nil {
			return nil
		}
		failures = append(failures, fmt.Errorf("%s: %w", tool[0], err))
	}
	if len(failures) > 0 {
		return fmt.Errorf("every clipboard tool failed (tried: %s): %w", strings.Join(tried, ", "), errors.Join(failures...))
	}
	return fmt.Errorf("no suitable clipboard tool found (tried: %s)", strings.Join(tried, ", "))
}

func isCommandAvailable(name string) bool {
	_, err := lookPath(name)
	return err == nil
}
