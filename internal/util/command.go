package util

import (
	"fmt"

	"github.com/csvseek/csvseek/internal/config"
	"github.com/kballard/go-shellquote"
)

// ProgressMsg prints a progress message to stderr, unless --quiet was
// given.
func ProgressMsg(msg string) {
	if !config.Quiet {
		fmt.Println("-->", msg)
	}
}

// ProgressCmd prints a subprocess invocation as a progress message,
// quoting the arguments for copy-paste into a shell.
func ProgressCmd(cmd []string) {
	ProgressMsg(shellquote.Join(cmd...))
}
