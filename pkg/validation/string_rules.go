package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/model"
)

const emailPattern = `^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`

type regexRule struct {
	pattern *regexp.Regexp
	message string
}

// Regex passes when the candidate is a string matching pattern. It panics
// when pattern does not compile; use RegexE for patterns that come from
// user supplied configuration.
func Regex(pattern, msg string) model.Validator {
	return regexRule{pattern: regexp.MustCompile(pattern), message: msg}
}

// RegexE is Regex returning the compile error instead of panicking.
func RegexE(pattern, msg string) (model.Validator, error) {
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("validation: compile pattern %q: %w", pattern, err)
	}
	return regexRule{pattern: compiled, message: msg}, nil
}

// Email passes for strings that look like an email address.
func Email(msg string) model.Validator {
	return Regex(emailPattern, msg)
}

func (r regexRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	s, ok := value.Str()
	if !ok || !r.pattern.MatchString(s) {
		return model.Fail(r.message), nil
	}
	return model.Pass(), nil
}

type lengthRule struct {
	limit   int
	max     bool
	message string
}

// MinLength passes for strings with at least n characters.
func MinLength(n int, msg string) model.Validator {
	return lengthRule{limit: n, message: msg}
}

// MaxLength passes for strings with at most n characters.
func MaxLength(n int, msg string) model.Validator {
	return lengthRule{limit: n, max: true, message: msg}
}

func (r lengthRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	s, ok := value.Str()
	if !ok {
		return model.Fail(r.message), nil
	}
	length := utf8.RuneCountInString(s)
	if r.max && length > r.limit {
		return model.Fail(r.message), nil
	}
	if !r.max && length < r.limit {
		return model.Fail(r.message), nil
	}
	return model.Pass(), nil
}

type notEmptyRule struct {
	message string
}

// NotEmpty passes for non-empty strings. Numbers are rejected with
// ErrTypeMisuse because the check is meaningless for them.
func NotEmpty(msg string) model.Validator {
	return notEmptyRule{message: msg}
}

func (r notEmptyRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	s, ok := value.Str()
	if !ok {
		return model.Result{}, fmt.Errorf("%w: NotEmpty requires a string, got number %s", ErrTypeMisuse, value)
	}
	if s == "" {
		return model.Fail(r.message), nil
	}
	return model.Pass(), nil
}
