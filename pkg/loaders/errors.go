package loaders

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// ErrInvalidScene is wrapped by every semantic problem found in a scene file
var ErrInvalidScene = errors.New("invalid scene file")

// SceneError locates a problem inside a scene file
type SceneError struct {
	Field   string // dotted path into the document, e.g. "spheres[2].material.type"
	Message string

	frame xerrors.Frame
}

func newSceneError(field, format string, args ...interface{}) *SceneError {
	return &SceneError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		frame:   xerrors.Caller(1),
	}
}

func (e *SceneError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidScene, e.Field, e.Message)
}

func (e *SceneError) Format(f fmt.State, c rune) { // implements fmt.Formatter
	xerrors.FormatError(e, f, c)
}

func (e *SceneError) FormatError(p xerrors.Printer) error { // implements xerrors.Formatter
	p.Print(e.Error())
	if p.Detail() {
		e.frame.Format(p)
	}
	return nil
}

func (e *SceneError) Unwrap() error {
	return ErrInvalidScene
}
