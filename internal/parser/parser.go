package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
)

// Parser turns one uploaded document into validated client records.
type Parser interface {
	// Parse processes raw upload bytes. Individual malformed rows are
	// skipped; only a container-level failure returns an error.
	Parse(data []byte) (*models.ParseResult, error)
	// FormatName returns the human-readable format name.
	FormatName() string
}

// New returns the parser for the given format.
func New(format models.Format, table *bank.RoutingTable) (Parser, error) {
	switch format {
	case models.FormatPipe:
		return &PipeParser{Table: table}, nil
	case models.FormatSheet:
		return &SheetParser{Table: table}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}
}

// DetectFormat derives the upload format from a filename extension.
func DetectFormat(filename string) (models.Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return models.FormatPipe, nil
	case ".xls", ".xlsx":
		return models.FormatSheet, nil
	default:
		return "", fmt.Errorf("unsupported file type %q: use .txt, .xls or .xlsx", ext)
	}
}
