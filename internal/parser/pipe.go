package parser

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/models"
)

// PipeParser reads the pipe-delimited text format.
//
// One candidate record per line, fields in fixed positional order:
//
//	phone|full name|birth date|email|address|city (postal code)|IBAN|SWIFT
//
// The SWIFT field is optional. Lines with fewer than 7 fields and lines
// whose phone cannot be canonicalized are skipped.
type PipeParser struct {
	Table *bank.RoutingTable
}

func (p *PipeParser) FormatName() string {
	return "pipe-delimited text"
}

// cityPattern matches "City (75001)"; anything else is treated as a city
// name with no postal code.
var cityPattern = regexp.MustCompile(`^(.+?)\s*\((\d{5})\)$`)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (p *PipeParser) Parse(data []byte) (*models.ParseResult, error) {
	text := string(bytes.TrimPrefix(data, utf8BOM))

	res := &models.ParseResult{}
	now := time.Now()

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "|")
		if len(parts) < 7 {
			res.Skipped++
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		f := rowFields{
			phone:     parts[0],
			birthDate: parts[2],
			email:     parts[3],
			address:   parts[4],
			iban:      parts[6],
		}
		f.lastName, f.firstName = splitFullName(parts[1])
		f.city, f.postalCode = parseCityField(parts[5])
		if len(parts) > 7 {
			f.swift = parts[7]
		}

		rec, cls, ok := buildRecord(p.Table, f, now)
		if !ok {
			res.Skipped++
			continue
		}
		if cls.Identified {
			res.Identified++
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

// parseCityField splits "City (75001)" into city and postal code,
// falling back to the whole field as the city.
func parseCityField(field string) (city, postalCode string) {
	if m := cityPattern.FindStringSubmatch(field); m != nil {
		return strings.TrimSpace(m[1]), m[2]
	}
	return field, ""
}
