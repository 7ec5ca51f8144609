package helpers

import (
	"fmt"
	"github.com/fatih/color"
	"io"
)

func Info(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "💡 "+format+"\n", a...)
}

func Success(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "✅ %s\n", color.GreenString(format, a...))
}

func Skip(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "🚧 %s\n", color.YellowString(format, a...))
}

func Fail(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, "🚫 %s\n", color.RedString(format, a...))
}
