package sitemap

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrWriteFailed wraps any failure to write the output file.
var ErrWriteFailed = errors.New("failed to write sitemap")

const indent = "    "

// Encode writes the XML declaration and the <urlset> document, with a
// comment in front of the film and people sections.
func Encode(w io.Writer, sm *Sitemap) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(xml.Header)
	fmt.Fprintf(bw, "<urlset xmlns=%q>\n", Namespace)

	sections := []struct {
		comment string
		entries []Entry
	}{
		{"", sm.Static},
		{fmt.Sprintf("Film Pages (%d total)", len(sm.Films)), sm.Films},
		{fmt.Sprintf("People Pages (%d total)", len(sm.People)), sm.People},
	}
	for _, section := range sections {
		if section.comment != "" {
			fmt.Fprintf(bw, "%s<!-- %s -->\n", indent, section.comment)
		}
		for _, entry := range section.entries {
			b, err := xml.MarshalIndent(entry, indent, indent)
			if err != nil {
				return fmt.Errorf("failed to encode %s: %w", entry.Loc, err)
			}
			bw.Write(b)
			bw.WriteByte('\n')
		}
	}

	bw.WriteString("</urlset>\n")
	return bw.Flush()
}

// Marshal returns the encoded document.
func Marshal(sm *Sitemap) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, sm); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile overwrites path with data. There is no temp file or rename:
// a crash mid-write can leave a truncated file, and the fix is to rerun.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}
