package wire

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

// Issue is one field-level validation finding. Issues are structured so
// callers can log or test against them deterministically instead of
// matching free-text messages.
type Issue struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// ValidationError reports a structural mismatch against a known family's
// schema. It is recoverable: the record is dropped and the stream
// continues.
type ValidationError struct {
	Provider Provider `json:"provider"`
	Issues   []Issue  `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: expected %s, got %s", issue.Path, issue.Expected, issue.Actual))
	}
	return fmt.Sprintf("%s record invalid: %s", e.Provider, strings.Join(parts, "; "))
}

// PrefixIssues rebases issue paths under a parent field, for schemas
// validated in two steps (envelope, then nested payload header).
func PrefixIssues(verr *ValidationError, prefix string) *ValidationError {
	for i := range verr.Issues {
		if verr.Issues[i].Path == "" {
			verr.Issues[i].Path = prefix
			continue
		}
		verr.Issues[i].Path = prefix + "." + verr.Issues[i].Path
	}
	return verr
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report issue paths using json tag names, matching the wire shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Decode fills a family schema struct from a loosely typed map, keeping
// any top-level keys the struct does not claim, then enforces the
// struct's validate tags. It is total: every input classifies as either
// (schema, extra) or a *ValidationError.
func Decode(provider Provider, data map[string]any, out any) (map[string]any, *ValidationError) {
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return nil, &ValidationError{Provider: provider, Issues: []Issue{
			{Path: "", Expected: "decodable payload", Actual: err.Error()},
		}}
	}
	if err := decoder.Decode(data); err != nil {
		return nil, &ValidationError{Provider: provider, Issues: decodeIssues(err)}
	}

	extra := collectExtra(data, md.Unused)

	if err := validate.Struct(out); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, &ValidationError{Provider: provider, Issues: []Issue{
				{Path: "", Expected: "valid payload", Actual: err.Error()},
			}}
		}
		issues := make([]Issue, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			issues = append(issues, Issue{
				Path:     issuePath(fe.Namespace()),
				Expected: issueExpectation(fe),
				Actual:   fmt.Sprintf("%v", fe.Value()),
			})
		}
		return nil, &ValidationError{Provider: provider, Issues: issues}
	}

	return extra, nil
}

// decodeIssues converts decoder failures into field-level issues. The
// decoder joins one *mapstructure.DecodeError per failed field, so the
// join is flattened and each cause keeps its own path.
func decodeIssues(err error) []Issue {
	var issues []Issue
	for _, cause := range flattenErrors(err) {
		var derr *mapstructure.DecodeError
		if errors.As(cause, &derr) {
			issues = append(issues, Issue{
				Path:     derr.Name(),
				Expected: "compatible type",
				Actual:   derr.Unwrap().Error(),
			})
			continue
		}
		issues = append(issues, Issue{Path: "", Expected: "decodable payload", Actual: cause.Error()})
	}
	if len(issues) == 0 {
		issues = append(issues, Issue{Path: "", Expected: "decodable payload", Actual: err.Error()})
	}
	return issues
}

func flattenErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, cause := range joined.Unwrap() {
			out = append(out, flattenErrors(cause)...)
		}
		return out
	}
	return []error{err}
}

// collectExtra gathers top-level keys the schema did not consume. Nested
// unused keys stay inside the values already captured by map fields.
func collectExtra(data map[string]any, unused []string) map[string]any {
	var extra map[string]any
	for _, key := range unused {
		if strings.Contains(key, ".") {
			continue
		}
		if extra == nil {
			extra = make(map[string]any)
		}
		extra[key] = data[key]
	}
	return extra
}

// issuePath trims the schema struct name from a validator namespace,
// leaving the wire field path.
func issuePath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func issueExpectation(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}
