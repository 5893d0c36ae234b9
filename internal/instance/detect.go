// File: detect.go
// Role: lets cmd/fspscheduler pick LoadShop vs LoadModular without the
// caller having to already know which §6.2 document shape `--input` names.
package instance

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Kind is the root element of a §6.2 instance document.
type Kind int

const (
	KindShop Kind = iota
	KindModular
)

// DetectKind peeks at path's root XML element to tell a single-shop
// <SPInstance> document from a <modular> production-line document, without
// parsing the whole file.
func DetectKind(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("instance: open %s: %w", path, err)
	}
	defer f.Close()

	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return 0, fmt.Errorf("instance: %s: %w", path, ErrUnknownFileType)
		}
		if err != nil {
			return 0, fmt.Errorf("instance: detect %s: %w", path, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "modular":
			return KindModular, nil
		case "SPInstance":
			return KindShop, nil
		default:
			return 0, fmt.Errorf("instance: %s: %w: root element %q", path, ErrUnknownFileType, start.Name.Local)
		}
	}
}
