package ui

import (
	"strconv"
	"strings"
)

type command struct {
	name string
	arg  string
}

// parseCommand recognizes a slash command typed into the input.
func parseCommand(input string) (command, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") || strings.Contains(input, "\n") {
		return command{}, false
	}

	name, arg, _ := strings.Cut(input[1:], " ")
	switch name {
	case "copy", "code", "new", "attach", "detach", "model":
		return command{name: name, arg: strings.TrimSpace(arg)}, true
	}
	return command{}, false
}

// blockIndex parses a 1-based code block number.
func blockIndex(arg string, count int) (int, bool) {
	if arg == "" {
		arg = "1"
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > count {
		return 0, false
	}
	return n - 1, true
}
