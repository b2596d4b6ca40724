package bridgemoji

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var issuePrinter = message.NewPrinter(language.English)

// ConfigIssue is one schema violation, located in the YAML source when
// possible. Line and Column are 1-based and zero when unknown.
type ConfigIssue struct {
	// Path is the JSON pointer of the offending value, "" for the document.
	Path    string
	Line    int
	Column  int
	Message string
}

func (i ConfigIssue) String() string {
	var b strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&b, "line %d:%d: ", i.Line, i.Column)
	}
	if i.Path != "" {
		b.WriteString(i.Path + ": ")
	}
	b.WriteString(i.Message)
	return b.String()
}

// ConfigError lists every schema violation of a configuration file. It
// matches ErrInvalidConfig with errors.Is.
type ConfigError struct {
	Issues []ConfigIssue
	Err    error
}

func (e *ConfigError) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%v: %v", ErrInvalidConfig, e.Err)
	}
	lines := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		lines[i] = issue.String()
	}
	return fmt.Sprintf("%v: %s", ErrInvalidConfig, strings.Join(lines, "; "))
}

func (e *ConfigError) Unwrap() []error {
	return []error{ErrInvalidConfig, e.Err}
}

// newConfigError turns a schema validation error into issues pointing at the
// YAML source in data.
func newConfigError(data []byte, err error) *ConfigError {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &ConfigError{Err: err}
	}

	file, parseErr := parser.ParseBytes(data, 0)
	if parseErr != nil {
		configLog.Printf("Cannot locate issues, YAML did not parse: %v", parseErr)
	}

	var issues []ConfigIssue
	for _, leaf := range leafErrors(verr) {
		location := leaf.InstanceLocation
		// Unknown keys are reported on the object; point at the key instead.
		if ap, ok := leaf.ErrorKind.(*kind.AdditionalProperties); ok && len(ap.Properties) > 0 {
			location = append(append([]string(nil), location...), ap.Properties[0])
		}

		issue := ConfigIssue{
			Path:    instancePointer(leaf.InstanceLocation),
			Message: leaf.ErrorKind.LocalizedString(issuePrinter),
		}
		if parseErr == nil {
			issue.Line, issue.Column = locate(file, location)
		}
		issues = append(issues, issue)
	}
	configLog.Printf("Located %d schema issue(s)", len(issues))
	return &ConfigError{Issues: issues, Err: err}
}

func leafErrors(e *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(e.Causes) == 0 {
		return []*jsonschema.ValidationError{e}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range e.Causes {
		leaves = append(leaves, leafErrors(c)...)
	}
	return leaves
}

func instancePointer(location []string) string {
	if len(location) == 0 {
		return ""
	}
	return "/" + strings.Join(location, "/")
}

// yamlPath converts an instance location to a go-yaml path expression.
func yamlPath(location []string) string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range location {
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if strings.ContainsAny(seg, ".[]'\" ") {
			b.WriteString(".'" + seg + "'")
			continue
		}
		b.WriteString("." + seg)
	}
	return b.String()
}

// locate returns the position of the node at location, or of its nearest
// ancestor that exists.
func locate(f *ast.File, location []string) (int, int) {
	for n := len(location); n > 0; n-- {
		p, err := yaml.PathString(yamlPath(location[:n]))
		if err != nil {
			continue
		}
		node, err := p.FilterFile(f)
		if err != nil || node == nil || node.GetToken() == nil {
			continue
		}
		pos := node.GetToken().Position
		return pos.Line, pos.Column
	}
	return 0, 0
}
