package apperr

// InputError is fatal for the run: the input file or a run option is
// unusable and nothing can be ingested.
type InputError struct {
	Message string
	Err     error
}

func (e *InputError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func NewInput(msg string) *InputError {
	return &InputError{Message: msg}
}

func NewInputWrap(msg string, err error) *InputError {
	return &InputError{Message: msg, Err: err}
}

// ItemError covers a single candidate: the item is dropped, the run
// continues.
type ItemError struct {
	Message string
	Err     error
}

func (e *ItemError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

func NewItem(msg string) *ItemError {
	return &ItemError{Message: msg}
}

func NewItemWrap(msg string, err error) *ItemError {
	return &ItemError{Message: msg, Err: err}
}
