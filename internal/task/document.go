package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// document is the persisted shape shared by the file and redis backends.
type document struct {
	NextID int64  `json:"nextId"`
	Tasks  []Task `json:"tasks"`
}

func emptyDocument() *document {
	return &document{NextID: 1, Tasks: []Task{}}
}

const documentSchemaURL = "tasks.schema.json"

const documentSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["nextId", "tasks"],
	"properties": {
		"nextId": {"type": "integer", "minimum": 1},
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "title", "status", "createdAt"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"title": {"type": "string", "minLength": 1},
					"description": {"type": "string"},
					"status": {"enum": ["Not Started", "In Progress", "Completed"]},
					"createdAt": {"type": "string", "format": "date-time"}
				}
			}
		}
	}
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(documentSchemaURL)
	})
	return schema, schemaErr
}

// decodeDocument parses and validates raw bytes. Any error means the caller
// should fall back to an empty collection.
func decodeDocument(b []byte) (*document, error) {
	if len(bytes.TrimSpace(b)) == 0 {
		return emptyDocument(), nil
	}

	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Tasks == nil {
		doc.Tasks = []Task{}
	}
	doc.NextID = max(doc.NextID, maxNumericID(doc.Tasks)+1)
	return &doc, nil
}

func encodeDocument(doc *document) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// maxNumericID keeps a hand-edited document from reissuing an id that is still present.
func maxNumericID(tasks []Task) int64 {
	var m int64
	for _, t := range tasks {
		if n, err := strconv.ParseInt(t.ID, 10, 64); err == nil && n > m {
			m = n
		}
	}
	return m
}

func (d *document) create(title, description string) Task {
	t := newTask(title, description)
	t.ID = strconv.FormatInt(d.NextID, 10)
	d.NextID++
	d.Tasks = append(d.Tasks, t)
	return t
}

func (d *document) index(id string) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *document) get(id string) (*Task, error) {
	i := d.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	t := d.Tasks[i]
	return &t, nil
}

func (d *document) update(id string, p Patch) (*Task, error) {
	i := d.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p.apply(&d.Tasks[i])
	t := d.Tasks[i]
	return &t, nil
}

func (d *document) remove(id string) error {
	i := d.index(id)
	if i < 0 {
		return ErrNotFound
	}
	d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
	return nil
}

func (d *document) list() []Task {
	out := make([]Task, len(d.Tasks))
	copy(out, d.Tasks)
	return out
}
