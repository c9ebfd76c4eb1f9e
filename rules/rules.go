package rules

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reoring/fieldpipe"
)

var (
	// ErrInvalidDocument reports a structurally wrong rule document.
	ErrInvalidDocument = errors.New("rules: invalid document")
	// ErrUnknownCheck reports a check name missing from the registry.
	ErrUnknownCheck = errors.New("rules: unknown check")
	// ErrBadArgs reports arguments a check cannot accept.
	ErrBadArgs = errors.New("rules: bad check arguments")
)

// Document is the decoded form of a rule file.
//
//	errNo: false
//	messages: { required: "must be present" }
//	fields:
//	  - name: name
//	    required: true
//	    checks: [isString, trim, { length: [1, 255] }]
type Document struct {
	ErrNo    bool              `yaml:"errNo"`
	Messages map[string]string `yaml:"messages"`
	Fields   []FieldSpec       `yaml:"fields"`
}

// FieldSpec declares one field.
type FieldSpec struct {
	Name     string            `yaml:"name"`
	Required bool              `yaml:"required"`
	Default  any               `yaml:"default"`
	ErrNo    bool              `yaml:"errNo"`
	Messages map[string]string `yaml:"messages"`
	Checks   []CheckSpec       `yaml:"checks"`
}

// CheckSpec names a registered check and its arguments. In YAML it is either
// a bare name (`trim`) or a single-key mapping whose value is the argument
// list (`length: [1, 255]`) or a single argument (`min: 1`).
type CheckSpec struct {
	Name string
	Args []any
	Line int
}

func (c *CheckSpec) UnmarshalYAML(n *yaml.Node) error {
	c.Line = n.Line
	switch n.Kind {
	case yaml.ScalarNode:
		c.Name = n.Value
		return nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return fmt.Errorf("%w: line %d: a check mapping must have exactly one key", ErrInvalidDocument, n.Line)
		}
		c.Name = n.Content[0].Value
		var arg any
		if err := n.Content[1].Decode(&arg); err != nil {
			return err
		}
		switch t := arg.(type) {
		case nil:
		case []any:
			c.Args = t
		default:
			c.Args = []any{t}
		}
		return nil
	default:
		return fmt.Errorf("%w: line %d: a check must be a name or a mapping", ErrInvalidDocument, n.Line)
	}
}

// Parse decodes a rule document (YAML or JSON) and checks that field names are
// present and unique.
func Parse(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	var doc Document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	seen := make(map[string]int, len(doc.Fields))
	for i, fs := range doc.Fields {
		if fs.Name == "" {
			return nil, fmt.Errorf("%w: field #%d has no name", ErrInvalidDocument, i+1)
		}
		if j, dup := seen[fs.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q (#%d and #%d)", ErrInvalidDocument, fs.Name, j+1, i+1)
		}
		seen[fs.Name] = i
	}
	return &doc, nil
}

// Build turns the document into a Validator whose field order follows the
// document. Extra options are applied after the order.
func (d *Document) Build(opts ...fieldpipe.Option) (*fieldpipe.Validator, error) {
	rs := make(fieldpipe.Rules, len(d.Fields))
	names := make([]string, 0, len(d.Fields))
	for _, fs := range d.Fields {
		f, err := fs.Field()
		if err != nil {
			return nil, err
		}
		rs[fs.Name] = f
		names = append(names, fs.Name)
	}
	v := fieldpipe.Make(rs, append([]fieldpipe.Option{fieldpipe.WithOrder(names...)}, opts...)...)
	if len(d.Messages) > 0 {
		v.SetCustomErrors(d.Messages)
	}
	if d.ErrNo {
		v.ErrNo()
	}
	return v, nil
}

// Field builds the pipeline for a single field spec.
func (fs FieldSpec) Field() (*fieldpipe.Field, error) {
	f := fieldpipe.Rule()
	if fs.Required {
		f.Required()
	}
	if fs.Default != nil {
		f.Default(fs.Default)
	}
	if fs.ErrNo {
		f.ErrNo()
	}
	if len(fs.Messages) > 0 {
		f.SetCustomErrors(fs.Messages)
	}
	for _, c := range fs.Checks {
		if err := Apply(f, c.Name, c.Args); err != nil {
			return nil, fmt.Errorf("field %q: line %d: %w", fs.Name, c.Line, err)
		}
	}
	return f, nil
}

// Load parses data and builds the Validator in one go.
func Load(data []byte, opts ...fieldpipe.Option) (*fieldpipe.Validator, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return doc.Build(opts...)
}
