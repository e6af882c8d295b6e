package export

import (
	"bytes"

	"github.com/gomutex/godocx"
)

// renderDocument holds the whole content in a single paragraph.
func renderDocument(content string) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, err
	}
	doc.AddParagraph(content)

	var out bytes.Buffer
	if err := doc.Write(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
