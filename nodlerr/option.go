package nodlerr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option   { return func(e *Error) { e.Message = msg } }
func WithSource(source string) Option { return func(e *Error) { e.Source = source } }
func WithLine(line int) Option        { return func(e *Error) { e.Line = line } }
func WithColumn(col int) Option       { return func(e *Error) { e.Column = col } }
func WithCause(err error) Option      { return func(e *Error) { e.cause = err } }

// WithLocation sets both the source document and the line number.
func WithLocation(source string, line int) Option {
	return func(e *Error) {
		e.Source = source
		e.Line = line
	}
}
