package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/trackd/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeCheck  Type = "check"
	TypeClaim  Type = "claim"
	TypeDelete Type = "rm"
	TypeTheme  Type = "theme"
	TypeReset  Type = "reset"
)

var aliases = map[string]Type{
	"new":    TypeAdd,
	"toggle": TypeCheck,
	"delete": TypeDelete,
	"logout": TypeReset,
}

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Name string
}

// CheckArgs toggles one day of one task. Task is an id or 1-based index and
// Day is anything ParseDay accepts.
type CheckArgs struct {
	Task string
	Day  string
}

type DeleteArgs struct {
	Task string
}

// ThemeArgs.Theme is empty when the next theme in the cycle is wanted.
type ThemeArgs struct {
	Theme model.Theme
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Check  *CheckArgs
	Delete *DeleteArgs
	Theme  *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}

	switch typ {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeCheck:
		return parseCheck(input, args)
	case TypeClaim:
		return Command{Type: TypeClaim, Raw: input}, nil
	case TypeDelete:
		return parseDelete(input, args)
	case TypeTheme:
		return parseTheme(input, args)
	case TypeReset:
		return Command{Type: TypeReset, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	name, ok := model.CleanName(strings.Join(args, " "))
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Name: name}}, nil
}

func parseCheck(raw string, args []string) (Command, error) {
	switch len(args) {
	case 1:
		return Command{Type: TypeCheck, Raw: raw, Check: &CheckArgs{Task: args[0], Day: "today"}}, nil
	case 2:
		return Command{Type: TypeCheck, Raw: raw, Check: &CheckArgs{Task: args[0], Day: strings.ToLower(args[1])}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "check requires a task and an optional day"}
	}
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rm requires exactly one task"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Task: args[0]}}, nil
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) == 0 || strings.EqualFold(args[0], "next") {
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{}}, nil
	}
	theme := model.Theme(strings.ToLower(args[0]))
	if !theme.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown theme: %s", args[0])}
	}
	return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Theme: theme}}, nil
}

// ParseDay resolves "today", "tomorrow", "+N" offsets from today and
// YYYY-MM-DD keys.
func ParseDay(ref string, today model.DayKey) (model.DayKey, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	switch {
	case ref == "" || ref == "today":
		return today, nil
	case ref == "tomorrow":
		return today.AddDays(1), nil
	case strings.HasPrefix(ref, "+"):
		n, err := strconv.Atoi(ref[1:])
		if err != nil || n < 0 {
			return model.DayKey{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad day offset: %s", ref)}
		}
		return today.AddDays(n), nil
	default:
		key, err := model.ParseDayKey(ref)
		if err != nil {
			return model.DayKey{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("bad day: %s", ref)}
		}
		return key, nil
	}
}
