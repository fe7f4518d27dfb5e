package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"tasktracker/logger"
	"tasktracker/storage"
)

// ErrInvalidArgument reports malformed command-line input
var ErrInvalidArgument = errors.New("invalid argument")

// Kind identifies the operation a Request asks for
type Kind int

const (
	KindUnknown Kind = iota
	KindList
	KindAdd
	KindShow
	KindUpdate
	KindDelete
	KindMark
	KindHelp
	KindShell
	KindQuit
	KindDebug
)

// ParamType defines how a command parameter is parsed
type ParamType string

const (
	ParamTypeID     ParamType = "id"     // task id, 1-255
	ParamTypeText   ParamType = "text"   // every remaining argument, joined by spaces
	ParamTypeState  ParamType = "state"  // raw state, validated by the store
	ParamTypeFilter ParamType = "filter" // state validated while parsing
)

// Param defines a parameter for a command
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
}

// Command represents a CLI command
type Command struct {
	Name        string
	Kind        Kind
	Description string
	Example     string
	Params      []Param
	Handler     func(req *Request) error
	Quit        bool // ends the shell
	Hidden      bool // left out of help
}

// Request is a parsed command line, ready to execute
type Request struct {
	Kind   Kind
	Name   string
	ID     uint8
	Text   string
	State  string
	Filter *storage.State
}

var (
	registry = make(map[string]*Command)
	store    storage.Store
	output   io.Writer = os.Stdout
	log                = logger.New("error", io.Discard)
)

// Register adds a command to the registry
func Register(cmd *Command) {
	registry[strings.ToLower(cmd.Name)] = cmd
}

// SetStore sets the global store for commands to use
func SetStore(s storage.Store) {
	store = s
}

// GetStore returns the global store
func GetStore() storage.Store {
	return store
}

// SetOutput redirects command output, stdout by default
func SetOutput(w io.Writer) {
	output = w
}

// SetLogger sets the logger used for command diagnostics
func SetLogger(l *logger.Logger) {
	log = l
}

// List returns visible commands in help order
func List() []*Command {
	cmds := make([]*Command, 0, len(registry))
	for _, cmd := range registry {
		if !cmd.Hidden {
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Kind < cmds[j].Kind
	})
	return cmds
}

// GetByName returns a command by name (with or without leading /)
func GetByName(name string) *Command {
	return registry[strings.ToLower(strings.TrimPrefix(name, "/"))]
}

// Usage returns the one-line synopsis of a command
func Usage(cmd *Command) string {
	parts := []string{"task-tracker", cmd.Name}
	for _, p := range cmd.Params {
		if p.Required {
			parts = append(parts, "<"+p.Name+">")
		} else {
			parts = append(parts, "["+p.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}

// Parse turns command-line arguments (without the program name) into a
// Request. An unrecognised command is a KindUnknown request, not an error.
func Parse(args []string) (*Request, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: no command given", ErrInvalidArgument)
	}

	cmd := GetByName(args[0])
	if cmd == nil {
		return &Request{Kind: KindUnknown, Name: args[0]}, nil
	}

	req := &Request{Kind: cmd.Kind, Name: cmd.Name}
	rest := args[1:]
	for i, p := range cmd.Params {
		if i >= len(rest) {
			if p.Required {
				return nil, fmt.Errorf("%w: missing <%s>; usage: %s", ErrInvalidArgument, p.Name, Usage(cmd))
			}
			break
		}
		if err := bind(req, p, rest[i:]); err != nil {
			return nil, fmt.Errorf("%w: %v; usage: %s", ErrInvalidArgument, err, Usage(cmd))
		}
	}

	return req, nil
}

// bind stores the value of p, taken from the head of args, in req
func bind(req *Request, p Param, args []string) error {
	switch p.Type {
	case ParamTypeID:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		req.ID = id
	case ParamTypeText:
		req.Text = strings.Join(args, " ")
	case ParamTypeState:
		req.State = args[0]
	case ParamTypeFilter:
		state, err := storage.ParseState(args[0])
		if err != nil {
			return err
		}
		req.Filter = &state
	default:
		return fmt.Errorf("unsupported parameter type %q", p.Type)
	}
	return nil
}

func parseID(s string) (uint8, error) {
	id, err := strconv.ParseUint(s, 10, 8)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("the id must be a number between 1 and 255, got %q", s)
	}
	return uint8(id), nil
}

// Execute runs a parsed request. quit reports whether the shell should end.
func Execute(req *Request) (quit bool, err error) {
	if req.Kind == KindUnknown {
		fmt.Fprintf(output, "Unknown command: %s. Run 'task-tracker help' for usage.\n", req.Name)
		return false, nil
	}

	cmd := GetByName(req.Name)
	if cmd == nil {
		return false, fmt.Errorf("command not registered: %s", req.Name)
	}

	log.Debug("executing command", map[string]any{"command": cmd.Name, "id": req.ID})
	return cmd.Quit, cmd.Handler(req)
}

// Run parses and executes one command line
func Run(args []string) (quit bool, err error) {
	req, err := Parse(args)
	if err != nil {
		return false, err
	}
	return Execute(req)
}

// NeedsStore reports whether executing req touches the task store
func NeedsStore(req *Request) bool {
	switch req.Kind {
	case KindUnknown, KindHelp, KindQuit, KindDebug:
		return false
	}
	return true
}
