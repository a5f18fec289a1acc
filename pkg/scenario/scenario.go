// Package scenario loads, validates and replays scripted buffer scenarios.
//
// A scenario is a YAML (or JSON) document listing buffer operations with
// optional expectations after each step. Documents are validated against an
// embedded JSON schema before they are decoded.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Sentinel errors.
var (
	ErrSchema      = errors.New("scenario does not match schema")
	ErrUnknownOp   = errors.New("unknown scenario op")
	ErrStep        = errors.New("scenario step failed")
	ErrExpectation = errors.New("scenario expectation failed")
)

//go:embed schema.json
var schemaJSON []byte

// Op names a scenario operation.
type Op string

// Scenario operations.
const (
	OpPushBack  Op = "push_back"
	OpPushFront Op = "push_front"
	OpPopBack   Op = "pop_back"
	OpPopFront  Op = "pop_front"
	OpInsert    Op = "insert"
	OpErase     Op = "erase"
	OpAt        Op = "at"
	OpReserve   Op = "reserve"
	OpClear     Op = "clear"
	OpClone     Op = "clone"
	OpSort      Op = "sort"
	OpReverse   Op = "reverse"
)

// ExpectCapacityExceeded is the expect_error value for a refused growth.
const ExpectCapacityExceeded = "capacity_exceeded"

// Scenario is a decoded scenario document.
type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Options     Options `yaml:"options"`
	Steps       []Step  `yaml:"steps"`
	Expect      []int   `yaml:"expect"` // Final contents, checked after the last step.
}

// Options configures the buffer a scenario starts with.
type Options struct {
	MaxCapacity int `yaml:"max_capacity"`
	Reserve     int `yaml:"reserve"`
}

// Step is one operation. Value is the pushed or inserted value, or the
// expected result for pops and at. Count is the erase length (default 1)
// or the reserve size.
type Step struct {
	Op          Op     `yaml:"op"`
	Value       *int   `yaml:"value"`
	Index       *int   `yaml:"index"`
	Count       *int   `yaml:"count"`
	Expect      []int  `yaml:"expect"`
	ExpectLen   *int   `yaml:"expect_len"`
	ExpectCap   *int   `yaml:"expect_cap"`
	ExpectError string `yaml:"expect_error"`
}

// Validate checks data against the scenario schema. It returns the list of
// violations, which is empty for a valid document, and an error only when
// data cannot be parsed at all.
func Validate(data []byte) ([]string, error) {
	var doc any

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("validate scenario: %w", err)
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return violations, nil
}

// Parse validates data and decodes it into a Scenario.
func Parse(data []byte) (*Scenario, error) {
	violations, err := Validate(data)
	if err != nil {
		return nil, err
	}

	if len(violations) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchema, strings.Join(violations, "; "))
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scenario

	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	return &sc, nil
}

// Load reads and parses the scenario file at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return sc, nil
}
