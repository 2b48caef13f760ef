package mud

import (
	"regexp"
	"strconv"
	"strings"
)

// CommandKind identifies one message of the line protocol.
type CommandKind uint8

const (
	CmdLook CommandKind = iota
	CmdDig
	CmdFlag
	CmdDeflag
	CmdHelp
	CmdBye
)

func (k CommandKind) String() string {
	switch k {
	case CmdLook:
		return "look"
	case CmdDig:
		return "dig"
	case CmdFlag:
		return "flag"
	case CmdDeflag:
		return "deflag"
	case CmdHelp:
		return "help"
	case CmdBye:
		return "bye"
	}
	return "unknown"
}

// Command is a parsed protocol line. X and Y are only meaningful for
// dig, flag and deflag.
type Command struct {
	Kind CommandKind
	X, Y int
}

var commandPattern = regexp.MustCompile(`^(look|help|bye|(dig|flag|deflag) (\d+) (\d+))$`)

// ParseCommand matches one input line against the protocol grammar. A
// trailing carriage return is stripped first. ok is false for anything the
// grammar does not accept; such lines get no reply at all.
//
// Coordinates too large for an int parse as -1 so the board treats them as
// out of range.
func ParseCommand(line string) (cmd Command, ok bool) {
	line = strings.TrimSuffix(line, "\r")
	m := commandPattern.FindStringSubmatch(line)
	if m == nil {
		return Command{}, false
	}
	switch m[1] {
	case "look":
		return Command{Kind: CmdLook}, true
	case "help":
		return Command{Kind: CmdHelp}, true
	case "bye":
		return Command{Kind: CmdBye}, true
	}

	cmd = Command{X: coordinate(m[3]), Y: coordinate(m[4])}
	switch m[2] {
	case "dig":
		cmd.Kind = CmdDig
	case "flag":
		cmd.Kind = CmdFlag
	default:
		cmd.Kind = CmdDeflag
	}
	return cmd, true
}

func coordinate(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return n
}
