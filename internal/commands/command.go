package commands

import (
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeEdit     Type = "edit"
	TypeDelete   Type = "delete"
	TypeRemind   Type = "remind"
	TypeUnremind Type = "unremind"
	TypeShow     Type = "show"
	TypeImage    Type = "image"
	TypeReset    Type = "reset"
)

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

func invalid(format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NoteArgs holds the raw note fields of add and edit. Empty fields were not
// given on the command line.
type NoteArgs struct {
	Text     string
	Category string
	Color    string
	Emoji    string
	Remind   string
	Travel   string
	Budget   string
}

func (a NoteArgs) empty() bool {
	return a == NoteArgs{}
}

type EditArgs struct {
	Target string
	Note   NoteArgs
}

// TargetArgs names a note by 1-based position in the gallery or by id.
type TargetArgs struct {
	Target string
}

type RemindArgs struct {
	Target string
	When   string
}

type ShowArgs struct {
	Gallery string
}

type ImageArgs struct {
	Target string
	Path   string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *NoteArgs
	Edit     *EditArgs
	Delete   *TargetArgs
	Remind   *RemindArgs
	Unremind *TargetArgs
	Show     *ShowArgs
	Image    *ImageArgs
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

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	case TypeDelete, "rm":
		t, err := parseTarget("delete", args)
		return Command{Type: TypeDelete, Raw: input, Delete: t}, err
	case TypeRemind:
		return parseRemind(input, args)
	case TypeUnremind:
		t, err := parseTarget("unremind", args)
		return Command{Type: TypeUnremind, Raw: input, Unremind: t}, err
	case TypeShow, "gallery":
		return parseShow(input, args)
	case TypeImage:
		return parseImage(input, args)
	case TypeReset:
		return Command{Type: TypeReset, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseNoteArgs splits option tokens (cat:, color:, emoji:, remind:,
// travel:, budget:) from the free text. A remind: date followed by an
// HH:MM token takes that token as its time of day.
func parseNoteArgs(args []string) (NoteArgs, error) {
	var out NoteArgs
	var text []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		key, value, ok := strings.Cut(arg, ":")
		if !ok {
			text = append(text, arg)
			continue
		}
		var field *string
		switch strings.ToLower(key) {
		case "cat", "category":
			field = &out.Category
		case "color":
			field = &out.Color
		case "emoji":
			field = &out.Emoji
		case "remind":
			field = &out.Remind
		case "travel":
			field = &out.Travel
		case "budget":
			field = &out.Budget
		default:
			text = append(text, arg)
			continue
		}
		if value == "" {
			return NoteArgs{}, invalid("%s: requires a value", key)
		}
		if field == &out.Remind && i+1 < len(args) && isDate(value) && isClock(args[i+1]) {
			value += " " + args[i+1]
			i++
		}
		*field = value
	}
	out.Text = strings.TrimSpace(strings.Join(text, " "))
	return out, nil
}

func isDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}

func parseAdd(raw string, args []string) (Command, error) {
	note, err := parseNoteArgs(args)
	if err != nil {
		return Command{}, err
	}
	if note.Text == "" {
		return Command{}, invalid("add requires note text")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &note}, nil
}

func parseEdit(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("edit requires a note and new values")
	}
	note, err := parseNoteArgs(args[1:])
	if err != nil {
		return Command{}, err
	}
	if note.empty() {
		return Command{}, invalid("edit requires new values")
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Target: args[0], Note: note}}, nil
}

func parseTarget(name string, args []string) (*TargetArgs, error) {
	if len(args) != 1 {
		return nil, invalid("%s requires exactly one note", name)
	}
	return &TargetArgs{Target: args[0]}, nil
}

func parseRemind(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("remind requires a note and a time")
	}
	return Command{Type: TypeRemind, Raw: raw, Remind: &RemindArgs{Target: args[0], When: strings.Join(args[1:], " ")}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("show requires a gallery")
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Gallery: strings.ToLower(args[0])}}, nil
}

func parseImage(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("image requires a note and a file path")
	}
	return Command{Type: TypeImage, Raw: raw, Image: &ImageArgs{Target: args[0], Path: strings.Join(args[1:], " ")}}, nil
}
