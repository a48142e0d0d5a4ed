package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SyntaxError reports a config file that is not valid YAML.
type SyntaxError struct {
	Path   string
	Line   int
	Reason string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValueError reports a merged configuration value tagnotes cannot use.
// Key is written the way it appears in config files, e.g.
// "links.repository" or "excluded_prefixes[1]".
type ValueError struct {
	Key    string
	Value  any
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Key, e.Value, e.Reason)
}

// yamlLineError matches yaml.v3 messages such as
// "yaml: line 3: did not find expected node content".
var yamlLineError = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// commitType is the type token of a conventional commit subject.
var commitType = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

var validate = newValidator()

// newValidator reports fields by their koanf key and knows the
// "committype" rule for excluded prefixes.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	if err := v.RegisterValidation("committype", func(fl validator.FieldLevel) bool {
		return commitType.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateYAMLSyntax checks the file at path. A missing file is valid.
func ValidateYAMLSyntax(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &SyntaxError{Path: path, Reason: err.Error()}
	}
	return ValidateYAMLSyntaxFromBytes(data, path)
}

// ValidateYAMLSyntaxFromBytes checks data read from path. Blank content is
// valid and leaves the defaults in place.
func ValidateYAMLSyntaxFromBytes(data []byte, path string) error {
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	var node yaml.Node
	err := yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}
	if m := yamlLineError.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &SyntaxError{Path: path, Line: line, Reason: m[2]}
	}
	return &SyntaxError{Path: path, Reason: strings.TrimPrefix(err.Error(), "yaml: ")}
}

// ValidateConfigValues checks the merged configuration and returns a
// ValueError for the first unusable value.
func ValidateConfigValues(cfg *Configuration) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	_, key, _ := strings.Cut(fe.Namespace(), ".")
	return &ValueError{Key: key, Value: fe.Value(), Reason: reason(fe)}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eq=0|min=4":
		return "must be 0 (backend default) or at least 4"
	case "max":
		return "must be at most " + fe.Param()
	case "committype":
		return "is not a commit type prefix (letters, digits, '-' and '_')"
	case "http_url":
		return "must be an http(s) URL"
	default:
		return "fails " + fe.Tag()
	}
}
