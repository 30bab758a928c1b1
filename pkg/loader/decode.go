package loader

import (
	"io"
	"strings"

	fomoderrors "github.com/arthur-debert/fomod/pkg/errors"
	"github.com/beevik/etree"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeDocument strips a UTF-8 or UTF-16 byte order mark, transcoding
// UTF-16 to UTF-8, and parses the result.
func decodeDocument(data []byte) (*etree.Document, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fomoderrors.Wrap(err, fomoderrors.ErrPackageInvalid,
			"cannot decode package description")
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(decoded); err != nil {
		return nil, fomoderrors.Wrap(err, fomoderrors.ErrPackageInvalid,
			"cannot parse package description")
	}
	return doc, nil
}

// charsetReader is consulted for any declared encoding other than UTF-8.
// UTF-16 content has already been transcoded by decodeDocument.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "utf-16", "utf-16le", "utf-16be", "unicode":
		return input, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(input), nil
}
