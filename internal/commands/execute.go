package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(NoteArgs) (Result, error)
	Edit     func(EditArgs) (Result, error)
	Delete   func(TargetArgs) (Result, error)
	Remind   func(RemindArgs) (Result, error)
	Unremind func(TargetArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Image    func(ImageArgs) (Result, error)
	Reset    func() (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing("edit")
		}
		return handlers.Edit(*cmd.Edit)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing("delete")
		}
		return handlers.Delete(*cmd.Delete)
	case TypeRemind:
		if handlers.Remind == nil {
			return Result{}, missing("remind")
		}
		return handlers.Remind(*cmd.Remind)
	case TypeUnremind:
		if handlers.Unremind == nil {
			return Result{}, missing("unremind")
		}
		return handlers.Unremind(*cmd.Unremind)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing("show")
		}
		return handlers.Show(*cmd.Show)
	case TypeImage:
		if handlers.Image == nil {
			return Result{}, missing("image")
		}
		return handlers.Image(*cmd.Image)
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing("reset")
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
