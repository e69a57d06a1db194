// Package adapter implements the narrow read contract the core consumes:
// bytes in, a populated but unnormalized *model.Sbom out. Adapters never
// call Sbom.Normalize; that is the caller's responsibility.
package adapter

import (
	"encoding/json"
	"io"

	"github.com/sbomdiff/sbomdiff/internal/model"
	"github.com/sbomdiff/sbomdiff/internal/sbomerr"
)

// Format identifies which adapter should read a document.
type Format string

const (
	FormatAuto       Format = "auto"
	FormatCycloneDX  Format = "cyclonedx"
	FormatSPDX       Format = "spdx"
)

// sniff is the minimal shape used to content-sniff a document's format
// without committing to a full decode of either schema.
type sniff struct {
	BomFormat   string `json:"bomFormat"`
	SpdxVersion string `json:"spdxVersion"`
}

// Detect inspects the top-level JSON object and returns which format it
// matches. Ambiguity (both or neither marker present) is an error.
func Detect(data []byte) (Format, error) {
	var s sniff
	if err := json.Unmarshal(data, &s); err != nil {
		return "", sbomerr.NewParseError("auto", 0, err)
	}
	isCdx := s.BomFormat == "CycloneDX"
	isSpdx := s.SpdxVersion != ""
	switch {
	case isCdx && isSpdx:
		return "", &sbomerr.FormatAmbiguity{Candidates: []string{string(FormatCycloneDX), string(FormatSPDX)}}
	case isCdx:
		return FormatCycloneDX, nil
	case isSpdx:
		return FormatSPDX, nil
	default:
		return "", &sbomerr.FormatAmbiguity{Candidates: nil}
	}
}

// Read dispatches to the adapter named by format, or to content-sniffing
// when format is FormatAuto. It never calls Normalize on the result.
func Read(r io.Reader, format Format) (*model.Sbom, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, sbomerr.NewInputError("-", err)
	}
	if len(data) == 0 {
		return nil, sbomerr.NewInputError("-", io.EOF)
	}

	resolved := format
	if resolved == FormatAuto || resolved == "" {
		resolved, err = Detect(data)
		if err != nil {
			return nil, err
		}
	}

	switch resolved {
	case FormatCycloneDX:
		return ReadCycloneDX(data)
	case FormatSPDX:
		return ReadSPDX(data)
	default:
		return nil, sbomerr.NewConfigError("--format", "unknown format "+string(resolved))
	}
}
