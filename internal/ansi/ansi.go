package ansi

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/relaypoint/telnetd/internal/app"
)

const (
	ResetSeq = "\x1b[0m"
)

// Connection is a minimal interface for what ansi.Print needs to know about the connection.
// This avoids a circular dependency on the nodes package.
type Connection interface {
	IsUTF8() bool
}

// PrepareForOutput processes raw ANSI data for display.
// It treats the data as CP437 and converts it to UTF-8 when forceUTF8 is
// set; otherwise the bytes are passed through unconverted.
func PrepareForOutput(data []byte, forceUTF8 bool) []byte {
	// Remove SAUCE record
	cleanData := StripSauce(data)

	var s string
	if forceUTF8 {
		// If the client needs UTF-8 (like a modern terminal), decode CP437 to UTF-8
		s = DecodeCP437(cleanData)
	} else {
		// If the client is legacy (like SyncTerm), send raw bytes
		s = string(cleanData)
	}

	// Normalize line endings:
	// 1. Replace CRLF with LF (to avoid double CRs if we just did LF->CRLF)
	// 2. Replace LF with CRLF
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\r\n")

	return []byte(s)
}

// Print writes the prepared ANSI data to the given writer.
// It automatically strips SAUCE metadata, normalizes line endings,
// and appends a reset sequence to restore terminal state.
//
// It uses the provided Connection to determine if UTF-8 conversion is needed.
func Print(w io.Writer, data []byte, conn Connection) (int, error) {
	prepared := PrepareForOutput(data, conn.IsUTF8())
	prepared = append(prepared, []byte(ResetSeq)...)
	return w.Write(prepared)
}

// RenderArt loads "<name>.ans" from the configured art directory, renders
// it as a Sprig-enabled template with extra merged in as template.Custom,
// then prints the result with CP437/SAUCE handling appropriate to isUTF8.
// When the art carries a SAUCE record, its title/artist credit is made
// available to the template as .Custom.Sauce.
func RenderArt(w io.Writer, name string, isUTF8 bool, extra map[string]interface{}) error {
	path := filepath.Join(app.Config.Paths.Art, name+".ans")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if sauce, err := ParseSauceInfo(data); err == nil {
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra["Sauce"] = sauce
	}
	data = StripSauce(data)

	rendered, err := RenderTemplate(data, extra)
	if err != nil {
		return err
	}

	prepared := PrepareForOutput(rendered, isUTF8)
	prepared = append(prepared, []byte(ResetSeq)...)
	_, err = w.Write(prepared)
	return err
}
