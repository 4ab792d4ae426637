package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"taskpop/internal/priority"
	"taskpop/internal/service"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "tasks.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// ValidationError describes where a stored document breaks the schema.
type ValidationError struct {
	Path string // JSON pointer to the failing location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns service.ErrCorrupt so callers can match any invalid document.
func (e *ValidationError) Unwrap() []error {
	return []error{service.ErrCorrupt, e.Err}
}

// Validate checks raw against the stored-document schema.
func Validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &ValidationError{Err: err}
	}
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := ve
			for len(leaf.Causes) > 0 {
				leaf = leaf.Causes[0]
			}
			return &ValidationError{Path: leaf.InstanceLocation, Err: fmt.Errorf("%s", leaf.Message)}
		}
		return &ValidationError{Err: err}
	}
	return nil
}

// DecodeList decodes the value stored under service.TasksKey, which is the
// bare task array.
func DecodeList(raw []byte, newID func() string) (service.TaskList, error) {
	tasks, _, err := decodeList(raw, newID)
	return tasks, err
}

// decodeList is DecodeList that also reports whether any record was given
// a new id.
func decodeList(raw []byte, newID func() string) (service.TaskList, bool, error) {
	doc := make([]byte, 0, len(raw)+10)
	doc = append(doc, `{"tasks":`...)
	doc = append(doc, raw...)
	doc = append(doc, '}')
	return decode(doc, newID)
}

// Decode validates a stored document and returns its task list with
// defaults filled in: records without an id get a new one and a missing
// priority becomes unset.
func Decode(raw []byte, newID func() string) (service.TaskList, error) {
	tasks, _, err := decode(raw, newID)
	return tasks, err
}

func decode(raw []byte, newID func() string) (service.TaskList, bool, error) {
	if err := Validate(raw); err != nil {
		return nil, false, err
	}
	var doc service.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, false, &ValidationError{Err: err}
	}
	if newID == nil {
		newID = uuid.NewString
	}
	minted := false
	tasks := doc.Tasks.Clone()
	for i := range tasks {
		if strings.TrimSpace(tasks[i].ID) == "" {
			tasks[i].ID = newID()
			minted = true
		}
		if tasks[i].Priority == "" {
			tasks[i].Priority = priority.Unset
		}
	}
	return tasks, minted, nil
}

// EncodeList renders tasks as the value stored under service.TasksKey.
func EncodeList(tasks service.TaskList) ([]byte, error) {
	if tasks == nil {
		tasks = service.TaskList{}
	}
	return json.Marshal(tasks)
}

// Encode renders tasks in the stored-document shape, indented for export.
func Encode(tasks service.TaskList) ([]byte, error) {
	if tasks == nil {
		tasks = service.TaskList{}
	}
	data, err := json.MarshalIndent(service.Document{Tasks: tasks}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
