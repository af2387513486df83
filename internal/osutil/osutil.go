// Package osutil contains operating system specific helpers
package osutil

import (
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
)

const (
	Windows = "windows"
	Darwin  = "darwin"
)

const DirPermission = 0o755

// IsInteractive reports whether stdin and stdout are attached to a terminal.
func IsInteractive() bool {
	in := os.Stdin.Fd()
	out := os.Stdout.Fd()

	return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
		(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
}

// Editor returns the user's preferred text editor.
func Editor() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if e := os.Getenv(env); e != "" {
			return e
		}
	}

	if runtime.GOOS == Windows {
		return "C:\\Windows\\system32\\notepad.exe"
	}

	return "nano"
}
