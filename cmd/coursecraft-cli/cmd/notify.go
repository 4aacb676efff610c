package cmd

import (
	"fmt"
	"os"

	"coursecraft/internal/ports"
)

// consoleNotifier reports command outcomes on the terminal.
type consoleNotifier struct{}

var _ ports.Notifier = consoleNotifier{}

func (consoleNotifier) Success(msg string) {
	fmt.Println(msg)
}

func (consoleNotifier) Error(msg string) {
	fmt.Fprintln(os.Stderr, "Error:", msg)
}

var notifier ports.Notifier = consoleNotifier{}
