// Package guide holds the HR guide document: plain text extracted from the
// PDF the HR side uploads, read by the prompt builder and the report
// generator. A missing or unreadable guide degrades prompts, it never fails
// a request.
package guide

import (
	"bytes"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	pdflib "github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text out of a PDF. Any failure, including a panic
// inside the PDF parser on malformed input, yields an empty string.
func ExtractText(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("guide: pdf extraction panic: %v", r)
			text = ""
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("guide: open pdf: %v", err)
		return ""
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		log.Printf("guide: extract text: %v", err)
		return ""
	}
	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		log.Printf("guide: read text: %v", err)
		return ""
	}
	return strings.TrimSpace(b.String())
}

// Store holds the current guide text, replaceable at runtime via upload.
type Store struct {
	mu   sync.RWMutex
	text string
}

func NewStore() *Store {
	return &Store{}
}

// LoadFile extracts the guide from path if the file exists. Missing or broken
// files leave the store unchanged.
func (s *Store) LoadFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("guide: no guide loaded from %s: %v", path, err)
		return
	}
	s.SetPDF(data)
	log.Printf("guide: loaded HR guide from %s", path)
}

// SetPDF extracts text from the PDF bytes and replaces the stored guide.
// Failed extraction replaces it with empty text.
func (s *Store) SetPDF(data []byte) {
	text := ExtractText(data)
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Text returns the current guide text, empty when nothing is loaded.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}
