// Package main provides the todolist CLI, an interactive single-session
// project/task tracker. All state is held in memory for the duration of
// one session; nothing survives process exit.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/todolist/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var appErr *types.Error
		if errors.As(err, &appErr) {
			os.Exit(exitUserError)
		}
		os.Exit(exitSysError)
	}
	os.Exit(exitSuccess)
}
