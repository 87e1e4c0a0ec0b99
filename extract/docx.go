package extract

import (
	"bytes"
	"strings"

	"github.com/fumiama/go-docx"
)

// cfbMagic is the Compound File Binary header. An OOXML document wrapped in a
// CFB container is an encrypted Office file, not a plain zip.
var cfbMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}

// extractDOCX walks the document body and concatenates paragraph text.
// DOCX parsing is local, no provider client is involved.
func extractDOCX(buf []byte) (string, error) {
	if bytes.HasPrefix(buf, cfbMagic) {
		return "", &Error{Op: "docx", Reason: ReasonPasswordProtected}
	}
	// A DOCX is a zip archive; anything else will not parse.
	if len(buf) < 2 || buf[0] != 'P' || buf[1] != 'K' {
		return "", &Error{Op: "docx", Reason: ReasonCorrupted}
	}

	doc, err := docx.Parse(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return "", &Error{Op: "docx", Reason: ReasonCorrupted, Err: err}
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch v := item.(type) {
		case *docx.Paragraph:
			line := strings.TrimSpace(v.String())
			if line != "" {
				b.WriteString(line)
				b.WriteString("\n")
			}
		case *docx.Table:
			line := strings.TrimSpace(v.String())
			if line != "" {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}

	return finishText("docx", b.String())
}
