package ui

import (
	"fmt"
	"io"
)

// Kind classifies a notification.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindInfo
)

// Notification is a one-line message shown after an operation.
type Notification struct {
	Kind    Kind
	Message string
}

// Render styles the notification with the current theme.
func (n Notification) Render() string {
	t := Current()
	switch n.Kind {
	case KindError:
		return t.Error.Render(t.SymFail + " " + n.Message)
	case KindInfo:
		return t.Info.Render(t.SymInfo + " " + n.Message)
	default:
		return t.Success.Render(t.SymOK + " " + n.Message)
	}
}

func OK(w io.Writer, msg string)   { fmt.Fprintln(w, Notification{KindSuccess, msg}.Render()) }
func Fail(w io.Writer, msg string) { fmt.Fprintln(w, Notification{KindError, msg}.Render()) }
func Info(w io.Writer, msg string) { fmt.Fprintln(w, Notification{KindInfo, msg}.Render()) }
