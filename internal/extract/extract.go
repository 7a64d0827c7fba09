// Package extract pulls plain text out of uploaded project documents.
package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"audit-checklist/internal/apperr"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is the closed set of document formats text can be extracted from.
type Format int

const (
	FormatUnknown Format = iota
	FormatTxt
	FormatPDF
	FormatDOCX
)

func (f Format) String() string {
	switch f {
	case FormatTxt:
		return "txt"
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	}
	return "unknown"
}

// FormatOf resolves the format from the file extension only.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatTxt
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	}
	return FormatUnknown
}

// Text extracts the document text at path.
func Text(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperr.NotFound("file not found")
		}
		return "", apperr.Wrap(apperr.KindExtractionFailure, err, "failed to open file")
	}

	switch format := FormatOf(path); format {
	case FormatTxt:
		return fromTxt(path)
	case FormatPDF:
		return guarded(format, path, fromPDF)
	case FormatDOCX:
		return guarded(format, path, fromDOCX)
	default:
		return "", apperr.New(apperr.KindUnsupportedFormat, "unsupported file format %q for text extraction", filepath.Ext(path))
	}
}

// guarded converts parser errors and parser panics on malformed input into
// ExtractionFailure.
func guarded(format Format, path string, fn func(string) (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = apperr.Wrap(apperr.KindExtractionFailure, fmt.Errorf("%v", r), "failed to process %s file", format)
		}
	}()

	text, err = fn(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtractionFailure, err, "failed to process %s file", format)
	}
	return text, nil
}

func fromTxt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtractionFailure, err, "failed to read txt file")
	}
	return string(b), nil
}

func fromPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fromDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	return documentXMLText(r.Editable().GetContent())
}

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// documentXMLText walks word/document.xml keeping text runs, tabs and
// paragraph breaks.
func documentXMLText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}
