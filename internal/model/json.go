package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrDocumentInvalid = errors.New("model: document invalid")
	ErrSchemaCompile   = errors.New("model: document schema compile failed")
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// DocumentValidationError lists the issues found in a JSON document.
type DocumentValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *DocumentValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrDocumentInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrDocumentInvalid
}

type jsonMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

type jsonNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []jsonNode     `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []jsonMark     `json:"marks,omitempty"`
}

func (n *Node) toJSON() jsonNode {
	out := jsonNode{Type: n.Type.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = n.Attrs
	}
	for _, child := range n.Content {
		out.Content = append(out.Content, child.toJSON())
	}
	for _, m := range n.Marks {
		jm := jsonMark{Type: m.Type.Name}
		if len(m.Attrs) > 0 {
			jm.Attrs = m.Attrs
		}
		out.Marks = append(out.Marks, jm)
	}
	return out
}

// MarshalJSON encodes the node in the editor's JSON document shape.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

// NodeFromJSON validates data against the schema's document JSON Schema and
// decodes it into a node tree.
func NodeFromJSON(schema *Schema, data []byte) (*Node, error) {
	if err := schema.ValidateJSON(data); err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw jsonNode
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	return schema.nodeFromJSON(raw)
}

func (s *Schema) nodeFromJSON(raw jsonNode) (*Node, error) {
	nt := s.Node(raw.Type)
	if nt == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, raw.Type)
	}
	var marks []*Mark
	for _, rm := range raw.Marks {
		mt := s.Mark(rm.Type)
		if mt == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMarkType, rm.Type)
		}
		marks = mt.Create(normalizeNumbers(rm.Attrs)).AddToSet(marks)
	}
	if nt.IsText() {
		return s.Text(raw.Text, marks), nil
	}
	var content []*Node
	for _, rc := range raw.Content {
		child, err := s.nodeFromJSON(rc)
		if err != nil {
			return nil, err
		}
		content = append(content, child)
	}
	return nt.Create(normalizeNumbers(raw.Attrs), content, marks), nil
}

func normalizeNumbers(attrs map[string]any) Attrs {
	if attrs == nil {
		return nil
	}
	out := make(Attrs, len(attrs))
	for k, v := range attrs {
		if num, ok := v.(json.Number); ok {
			if i, err := num.Int64(); err == nil {
				out[k] = int(i)
				continue
			}
			f, _ := num.Float64()
			out[k] = f
			continue
		}
		out[k] = v
	}
	return out
}

// JSONSchema describes the JSON shape of documents built from this schema.
func (s *Schema) JSONSchema() map[string]any {
	nodeNames := make([]any, 0, len(s.nodeOrder))
	for _, nt := range s.nodeOrder {
		nodeNames = append(nodeNames, nt.Name)
	}
	markNames := make([]any, 0, len(s.markOrder))
	for _, mt := range s.markOrder {
		markNames = append(markNames, mt.Name)
	}

	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"allOf": []any{
			map[string]any{"$ref": "#/$defs/node"},
			map[string]any{
				"properties": map[string]any{
					"type": map[string]any{"const": s.top.Name},
				},
			},
		},
		"$defs": map[string]any{
			"node": map[string]any{
				"type":     "object",
				"required": []any{"type"},
				"properties": map[string]any{
					"type":  map[string]any{"enum": nodeNames},
					"attrs": map[string]any{"type": "object"},
					"text":  map[string]any{"type": "string", "minLength": 1},
					"content": map[string]any{
						"type":  "array",
						"items": map[string]any{"$ref": "#/$defs/node"},
					},
					"marks": map[string]any{
						"type":  "array",
						"items": map[string]any{"$ref": "#/$defs/mark"},
					},
				},
				"additionalProperties": false,
				"if": map[string]any{
					"properties": map[string]any{
						"type": map[string]any{"const": s.text.Name},
					},
				},
				"then": map[string]any{"required": []any{"text"}},
			},
			"mark": map[string]any{
				"type":     "object",
				"required": []any{"type"},
				"properties": map[string]any{
					"type":  map[string]any{"enum": markNames},
					"attrs": map[string]any{"type": "object"},
				},
				"additionalProperties": false,
			},
		},
	}
}

func (s *Schema) compiledJSONSchema() (*jsonschema.Schema, error) {
	s.validatorOnce.Do(func() {
		encoded, err := json.Marshal(s.JSONSchema())
		if err != nil {
			s.validatorErr = fmt.Errorf("%w: %v", ErrSchemaCompile, err)
			return
		}
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("document.json", bytes.NewReader(encoded)); err != nil {
			s.validatorErr = fmt.Errorf("%w: %v", ErrSchemaCompile, err)
			return
		}
		s.validator, s.validatorErr = compiler.Compile("document.json")
		if s.validatorErr != nil {
			s.validatorErr = fmt.Errorf("%w: %v", ErrSchemaCompile, s.validatorErr)
		}
	})
	return s.validator, s.validatorErr
}

// ValidateJSON checks an encoded document against JSONSchema.
func (s *Schema) ValidateJSON(data []byte) error {
	compiled, err := s.compiledJSONSchema()
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return &DocumentValidationError{
			Issues: []ValidationIssue{{Message: err.Error()}},
			Cause:  err,
		}
	}
	if err := compiled.Validate(payload); err != nil {
		return &DocumentValidationError{
			Issues: Issues(err),
			Cause:  err,
		}
	}
	return nil
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var docErr *DocumentValidationError
	if errors.As(err, &docErr) && docErr != nil {
		return docErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
