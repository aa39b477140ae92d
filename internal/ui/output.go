package ui

import (
	"fmt"
	"io"
	"os"
)

// Output helpers shared by commands. Everything goes to stdout so that prompts,
// the spinner and plain messages interleave in order.

var out io.Writer = os.Stdout

// SetOutput redirects the output helpers and returns a func restoring the previous writer.
func SetOutput(w io.Writer) func() {
	prev := out
	out = w
	return func() { out = prev }
}

// Title prints a bold header line.
func Title(text string) {
	fmt.Fprintln(out, TitleStyle.Render(text))
}

// Success prints a green check line.
func Success(text string) {
	fmt.Fprintln(out, SuccessStyle.Render(DefaultSymbols().Check)+" "+text)
}

// Error prints a red cross line.
func Error(text string) {
	fmt.Fprintln(out, ErrorStyle.Render(DefaultSymbols().Cross)+" "+text)
}

func Warning(text string) {
	fmt.Fprintln(out, WarningStyle.Render("! "+text))
}

// Dim prints secondary text.
func Dim(text string) {
	fmt.Fprintln(out, DimStyle.Render(text))
}

// Bold prints bold text.
func Bold(text string) {
	fmt.Fprintln(out, BoldStyle.Render(text))
}

// Command prints a shell command the user is expected to run next.
func Command(text string) {
	fmt.Fprintln(out, CodeStyle.Render(text))
}

func Line() {
	fmt.Fprintln(out)
}

func Print(text string) {
	fmt.Fprintln(out, text)
}

func RenderDim(text string) string {
	return DimStyle.Render(text)
}

func RenderBold(text string) string {
	return BoldStyle.Render(text)
}

func RenderCode(text string) string {
	return CodeStyle.Render(text)
}
