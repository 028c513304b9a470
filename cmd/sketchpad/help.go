package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"os"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

// helpTemplates holds one template per command, named after its file. root.txt
// also defines "flagList", which the others include.
var helpTemplates = template.Must(template.New("help").Funcs(template.FuncMap{
	"flags":   visibleFlags,
	"version": func() string { return version },
}).ParseFS(helpFS, "templates/*.txt"))

// visibleFlags lists fs in name order. Commands without flags pass nil.
func visibleFlags(fs *flag.FlagSet) []*flag.Flag {
	var out []*flag.Flag
	if fs != nil {
		fs.VisitAll(func(f *flag.Flag) { out = append(out, f) })
	}
	return out
}

// HelpData is what a help template renders.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError reports bad arguments. Its message is the command's help text.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	var buf bytes.Buffer
	if err := helpTemplates.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("render help %s: %v", e.of.Template(), err)
		return err.Error()
	}
	return buf.String()
}

func usageFunc(h HelpData) func() {
	return func() { fmt.Fprintln(os.Stderr, (&UsageError{of: h}).Error()) }
}
