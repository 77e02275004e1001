// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package format

import (
	"bytes"
	"errors"
	"io"
	"text/template"
)

// TimeLayout is the layout of the Time field.
const TimeLayout = "2006-01-02 15:04:05,000"

var (
	// ErrTemplate reports a line format that cannot be parsed.
	ErrTemplate = errors.New("invalid line format")
)

// Fields are the values available to a line format.
type Fields struct {
	Time      string
	Name      string
	Level     int
	LevelName string
	File      string
	Line      int
	Func      string
	Message   string
	// Attrs holds the rendered key/value attributes, including their leading space.
	Attrs string
}

// Template is a compiled line format.
type Template struct {
	source string
	tmpl   *template.Template
}

// TemplateError wraps the parsing error of a line format.
type TemplateError struct {
	Source string
	err    error
}

func (e *TemplateError) Error() string {
	return ErrTemplate.Error() + " " + quote(e.Source) + ": " + e.err.Error()
}

func (e *TemplateError) Unwrap() []error {
	return []error{ErrTemplate, e.err}
}

// Compile parses format. The template runs with missingkey=error so a misspelled field
// fails at render time instead of printing "<no value>".
func Compile(format string) (*Template, error) {
	tmpl, err := template.New("line").Option("missingkey=error").Parse(format)
	if err != nil {
		return nil, &TemplateError{Source: format, err: err}
	}

	// validate field names once with zero values
	if err := tmpl.Execute(io.Discard, Fields{}); err != nil {
		return nil, &TemplateError{Source: format, err: err}
	}

	return &Template{source: format, tmpl: tmpl}, nil
}

// MustCompile is like Compile but panics on error. It is meant for package level formats.
func MustCompile(format string) *Template {
	tmpl, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Source returns the format the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Render writes one line, terminated by a newline, to w.
func (t *Template) Render(w io.Writer, fields Fields) error {
	buffer := new(bytes.Buffer)
	if err := t.tmpl.Execute(buffer, fields); err != nil {
		return err
	}
	buffer.WriteByte('\n')

	_, err := w.Write(buffer.Bytes())
	return err
}

func quote(s string) string {
	return "\"" + s + "\""
}
