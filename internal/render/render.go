// Package render turns framework replies into console output: indented and
// optionally highlighted JSON, raw text, and tables.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
)

// DecodeError means a reply was not JSON. Callers print the raw text
// instead; it never fails a command.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "response is not valid JSON: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TryDecodeJSON validates text as a single JSON value. The raw bytes are
// kept so that key order and number formatting survive pretty printing.
func TryDecodeJSON(text string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return raw, nil
}

// Indent pretty prints raw with a two-space indent. Key order is kept and
// the \u0026, \u003c and \u003e escapes json.Marshal adds are turned back
// into &, < and >.
func Indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return unescapeHTML(buf.String())
}

var htmlEscapes = map[string]byte{
	`\u0026`: '&',
	`\u003c`: '<',
	`\u003e`: '>',
}

// unescapeHTML walks escape sequences pairwise so that an escaped
// backslash followed by "u003c" is left alone.
func unescapeHTML(s string) string {
	if !strings.Contains(s, `\u00`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		if i+6 <= len(s) {
			if c, ok := htmlEscapes[strings.ToLower(s[i:i+6])]; ok {
				b.WriteByte(c)
				i += 5
				continue
			}
		}
		b.WriteString(s[i : i+2])
		i++
	}
	return b.String()
}

// EmbeddedMessage returns the Message field of a framework envelope when
// that field itself holds JSON.
func EmbeddedMessage(raw json.RawMessage) (json.RawMessage, bool) {
	var envelope struct {
		Message *string `json:"Message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Message == nil {
		return nil, false
	}
	msg, err := TryDecodeJSON(*envelope.Message)
	if err != nil {
		return nil, false
	}
	return msg, true
}

// Printer writes command output to a single writer.
type Printer struct {
	out      io.Writer
	color    bool
	renderer *lipgloss.Renderer
}

// NewPrinter writes to w. Colour is used only when w is a terminal that
// supports it and NO_COLOR is unset.
func NewPrinter(w io.Writer) *Printer {
	output := termenv.NewOutput(w)
	return &Printer{
		out:      w,
		color:    !output.EnvNoColor() && output.ColorProfile() != termenv.Ascii,
		renderer: lipgloss.NewRenderer(w),
	}
}

// Line prints a plain line of text.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// JSON prints raw indented, highlighted when colour is enabled.
func (p *Printer) JSON(raw json.RawMessage) error {
	pretty := Indent(raw)
	if p.color {
		if err := quick.Highlight(p.out, pretty, "json", "terminal256", "monokai"); err == nil {
			_, err = fmt.Fprintln(p.out)
			return err
		}
	}
	_, err := fmt.Fprintln(p.out, pretty)
	return err
}

// Body prints a reply as JSON when it decodes and verbatim otherwise.
// Empty replies print nothing.
func (p *Printer) Body(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	raw, err := TryDecodeJSON(text)
	if err != nil {
		_, werr := fmt.Fprintln(p.out, text)
		return werr
	}
	return p.JSON(raw)
}

// Envelope prints the JSON carried in an envelope's Message field, falling
// back to Body for anything else.
func (p *Printer) Envelope(text string) error {
	raw, err := TryDecodeJSON(text)
	if err != nil {
		return p.Body(text)
	}
	if msg, ok := EmbeddedMessage(raw); ok {
		return p.JSON(msg)
	}
	return p.JSON(raw)
}

// Table renders rows under headers.
func (p *Printer) Table(headers []string, rows [][]string) error {
	headerStyle := p.renderer.NewStyle().Padding(0, 1)
	if p.color {
		headerStyle = headerStyle.Bold(true)
	}
	cellStyle := p.renderer.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.renderer.NewStyle()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(p.out, t.Render())
	return err
}
