package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// Extractor converts PDF and DOCX documents into plain text for name search.
// Content stays in memory; nothing is written to disk.
type Extractor struct{}

var _ ports.TextExtractor = (*Extractor)(nil)

// New builds the stateless extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract dispatches on the document extension.
func (e *Extractor) Extract(filename, ext string, content []byte) (string, error) {
	switch strings.ToLower(ext) {
	case "pdf":
		return pdfText(content)
	case "doc", "docx":
		return docxText(content)
	}
	return "", fmt.Errorf("unsupported document type %q for %s", ext, filename)
}

func pdfText(content []byte) (text string, err error) {
	// The pdf reader panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}

// docxText walks word/document.xml and collects every w:t run, which covers
// paragraphs and table cells alike.
func docxText(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", errors.New("docx has no word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var (
		builder strings.Builder
		inText  bool
	)

	decoder := xml.NewDecoder(rc)
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p", "tc", "br":
				builder.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return builder.String(), nil
}
