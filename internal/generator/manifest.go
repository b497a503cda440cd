package generator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ManifestFile is the package manifest written by the external tool.
const ManifestFile = "package.json"

//go:embed schema/package.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ManifestReport describes the generated package.json after dependencies
// were added.
type ManifestReport struct {
	Path string
	// Issues are schema violations formatted as "<pointer>: <message>".
	Issues []string
	// Missing lists declared dependencies not recorded in the manifest.
	Missing []string
}

// Valid reports whether the manifest passed schema validation.
func (r *ManifestReport) Valid() bool {
	return len(r.Issues) == 0
}

type packageManifest struct {
	Dependencies    map[string]any `json:"dependencies"`
	DevDependencies map[string]any `json:"devDependencies"`
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("package.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("package.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// CheckManifest validates <projectDir>/package.json and reports which of deps
// it does not record. The error return is for unreadable or unparsable files.
func CheckManifest(projectDir string, deps []string) (*ManifestReport, error) {
	path := filepath.Join(projectDir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	report := &ManifestReport{Path: path}
	if err := schema.Validate(inst); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		report.Issues = collectIssues(ve)
	}

	var pkg packageManifest
	if err := json.Unmarshal(data, &pkg); err != nil {
		// Schema issues already describe the shape problem.
		pkg = packageManifest{}
	}
	for _, dep := range deps {
		if _, ok := pkg.Dependencies[dep]; ok {
			continue
		}
		if _, ok := pkg.DevDependencies[dep]; ok {
			continue
		}
		report.Missing = append(report.Missing, dep)
	}

	return report, nil
}

// collectIssues flattens the validation error tree into leaf messages.
func collectIssues(ve *jsonschema.ValidationError) []string {
	var issues []string
	seen := make(map[string]bool)

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		msg := e.Error()
		if e.ErrorKind != nil {
			msg = e.ErrorKind.LocalizedString(printer)
		}
		issue := "/" + strings.Join(e.InstanceLocation, "/") + ": " + msg
		if !seen[issue] {
			seen[issue] = true
			issues = append(issues, issue)
		}
	}
	walk(ve)
	return issues
}
