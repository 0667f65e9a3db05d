package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formstate/pkg/model"
)

type boundRule struct {
	limit   float64
	max     bool
	message string
}

// Min passes when the candidate is at least n. String candidates are parsed
// as numbers first; unparsable strings fail. NaN and infinities fail.
func Min(n float64, msg string) model.Validator {
	return boundRule{limit: n, message: msg}
}

// Max passes when the candidate is at most n, with the same coercion as Min.
func Max(n float64, msg string) model.Validator {
	return boundRule{limit: n, max: true, message: msg}
}

// Range is All(Min(lo), Max(hi)) sharing one message.
func Range(lo, hi float64, msg string) model.Validator {
	return All(Min(lo, msg), Max(hi, msg))
}

func (r boundRule) Validate(value model.Value, _ model.Lookup) (model.Result, error) {
	n, ok := numeric(value)
	if !ok {
		return model.Fail(r.message), nil
	}
	if r.max && n > r.limit {
		return model.Fail(r.message), nil
	}
	if !r.max && n < r.limit {
		return model.Fail(r.message), nil
	}
	return model.Pass(), nil
}

func numeric(value model.Value) (float64, bool) {
	if n, ok := value.Num(); ok {
		return n, finite(n)
	}
	s, _ := value.Str()
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, finite(n)
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
