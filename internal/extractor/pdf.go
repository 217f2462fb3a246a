package extractor

import (
	"bytes"
	"fmt"

	"github.com/dslipak/pdf"

	"github.com/webpipe-gateway/webpipe/internal/model"
)

// PDFExtractor extracts plain text from a PDF byte stream using the
// native-Go dslipak/pdf reader. The bytes already came back from the
// fetcher, so this is purely a parse step with no network I/O of its own.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(body []byte, opts Options) (*model.ExtractResult, error) {
	r := bytes.NewReader(body)
	pdfReader, err := pdf.NewReader(r, int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	b, err := pdfReader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract PDF text: %w", err)
	}

	var textBuf bytes.Buffer
	if _, err := textBuf.ReadFrom(b); err != nil {
		return nil, fmt.Errorf("failed to read PDF text stream: %w", err)
	}

	text := truncate(textBuf.String(), opts.MaxChars)

	return &model.ExtractResult{
		Text:   text,
		Engine: "pdf-extract",
		Chars:  len(text),
	}, nil
}
