package commands

import "fmt"

type Result struct {
	Message string
	// NeedsConfirm is set when the handler wants a yes/no prompt before the
	// change is applied.
	NeedsConfirm bool
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Check  func(CheckArgs) (Result, error)
	Claim  func() (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Theme  func(ThemeArgs) (Result, error)
	Reset  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeCheck:
		if handlers.Check == nil {
			return Result{}, missing("check")
		}
		return handlers.Check(*cmd.Check)
	case TypeClaim:
		if handlers.Claim == nil {
			return Result{}, missing("claim")
		}
		return handlers.Claim()
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing("rm")
		}
		return handlers.Delete(*cmd.Delete)
	case TypeTheme:
		if handlers.Theme == nil {
			return Result{}, missing("theme")
		}
		return handlers.Theme(*cmd.Theme)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing("reset")
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}
