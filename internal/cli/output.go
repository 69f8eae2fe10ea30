package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Profile:
		o.printProfile(v)
	case []Profile:
		o.printProfiles(v)
	case WhitelistNames:
		o.printNames(v)
	case WhitelistCheck:
		o.printCheck(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Profile response type (matches API)
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WhitelistNames is the whitelist listing
type WhitelistNames []string

// WhitelistCheck pairs a queried identifier with the whitelist answer
type WhitelistCheck struct {
	Query       string `json:"query"`
	Whitelisted bool   `json:"whitelisted"`
}

func (o *Output) printProfile(p Profile) {
	_, _ = fmt.Fprintf(o.out, "%s (%s)\n", p.Name, p.ID)
}

func (o *Output) printProfiles(ps []Profile) {
	if len(ps) == 0 {
		_, _ = fmt.Fprintln(o.out, "No players connected")
		return
	}
	_, _ = fmt.Fprintf(o.out, "Players (%d):\n", len(ps))
	for _, p := range ps {
		_, _ = fmt.Fprintf(o.out, "  - %s (%s)\n", p.Name, p.ID)
	}
}

func (o *Output) printNames(names WhitelistNames) {
	if len(names) == 0 {
		_, _ = fmt.Fprintln(o.out, "Whitelist is empty")
		return
	}
	_, _ = fmt.Fprintf(o.out, "Whitelist (%d):\n", len(names))
	for _, n := range names {
		_, _ = fmt.Fprintf(o.out, "  - %s\n", n)
	}
}

func (o *Output) printCheck(c WhitelistCheck) {
	if c.Whitelisted {
		_, _ = fmt.Fprintf(o.out, "%s is whitelisted\n", c.Query)
	} else {
		_, _ = fmt.Fprintf(o.out, "%s is not whitelisted\n", c.Query)
	}
}
