package core

import (
	"fmt"
	"strings"
)

// Mode selects how anomalies in conditions are handled.
type Mode string

const (
	// ModeStrict reports malformed conditions and expressions as errors.
	ModeStrict Mode = "strict"
	// ModePermissive degrades malformed conditions to false.
	ModePermissive Mode = "permissive"
)

// Precedence selects how AND and OR combine.
type Precedence string

const (
	// PrecedenceLegacy gives AND and OR equal precedence and combines them
	// left to right in the order written.
	PrecedenceLegacy Precedence = "legacy"
	// PrecedenceStandard binds AND tighter than OR.
	PrecedenceStandard Precedence = "standard"
)

// DefaultTableName is the placeholder name of the single loaded table.
const DefaultTableName = "TABLE"

// Options configures parsing, evaluation and execution.
type Options struct {
	Mode       Mode
	Precedence Precedence
	// TableName is the identifier FROM must name, compared case-insensitively.
	TableName string
}

// DefaultOptions returns strict mode, legacy precedence and the TABLE
// placeholder.
func DefaultOptions() Options {
	return Options{
		Mode:       ModeStrict,
		Precedence: PrecedenceLegacy,
		TableName:  DefaultTableName,
	}
}

// Strict reports whether anomalies should surface as errors.
func (o Options) Strict() bool {
	return o.Mode != ModePermissive
}

// WithDefaults fills zero fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if o.Precedence == "" {
		o.Precedence = d.Precedence
	}
	if o.TableName == "" {
		o.TableName = d.TableName
	}
	return o
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeStrict, ModePermissive:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (expected strict or permissive)", s)
}

// ParsePrecedence parses a precedence name, case-insensitively.
func ParsePrecedence(s string) (Precedence, error) {
	switch p := Precedence(strings.ToLower(strings.TrimSpace(s))); p {
	case PrecedenceLegacy, PrecedenceStandard:
		return p, nil
	}
	return "", fmt.Errorf("unknown precedence %q (expected legacy or standard)", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Precedence) UnmarshalText(text []byte) error {
	parsed, err := ParsePrecedence(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
