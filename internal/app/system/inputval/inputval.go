// Package inputval provides synchronous, local validation for form
// input structs. Rules are declared with `validate` struct tags and a
// human-readable `label` tag used in messages:
//
//	type createInput struct {
//		Title string `validate:"required,max=200" label:"Title"`
//		Order int    `validate:"gte=0,lte=999" label:"Display order"`
//	}
//
// Validation never performs I/O; it runs before any service call and a
// failing result blocks submission entirely.
package inputval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// FieldError is one validation failure, keyed by struct field name.
type FieldError struct {
	Field   string
	Message string
}

// Result collects validation failures for one input struct.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first failure message, or "".
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// ByField returns failures as a field-keyed map for form re-rendering.
func (r Result) ByField() map[string]string {
	m := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := m[e.Field]; !ok {
			m[e.Field] = e.Message
		}
	}
	return m
}

func (r *Result) add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Message: msg})
}

// Validate applies the `validate` tag rules of every exported field of
// input (a struct or pointer to struct). Supported rules: required,
// max=N / min=N (string length), email, gte=N / lte=N (integers).
func Validate(input any) Result {
	var res Result

	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return res
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("validate")
		if tag == "" {
			continue
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		checkField(&res, f.Name, label, v.Field(i), strings.Split(tag, ","))
	}
	return res
}

func checkField(res *Result, name, label string, v reflect.Value, rules []string) {
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		arg := ""
		if i := strings.IndexByte(rule, '='); i >= 0 {
			rule, arg = rule[:i], rule[i+1:]
		}

		switch rule {
		case "required":
			if isZeroString(v) {
				res.add(name, label+" is required")
				return // no point checking further rules on an empty value
			}
		case "max":
			n, _ := strconv.Atoi(arg)
			if v.Kind() == reflect.String && len(strings.TrimSpace(v.String())) > n {
				res.add(name, fmt.Sprintf("%s must be at most %d characters", label, n))
			}
		case "min":
			n, _ := strconv.Atoi(arg)
			if v.Kind() == reflect.String && v.String() != "" && len(strings.TrimSpace(v.String())) < n {
				res.add(name, fmt.Sprintf("%s must be at least %d characters", label, n))
			}
		case "email":
			if v.Kind() == reflect.String && v.String() != "" && !IsValidEmail(v.String()) {
				res.add(name, label+" must be a valid email address")
			}
		case "gte":
			n, _ := strconv.ParseInt(arg, 10, 64)
			if isInt(v) && v.Int() < n {
				res.add(name, fmt.Sprintf("%s must be at least %d", label, n))
			}
		case "lte":
			n, _ := strconv.ParseInt(arg, 10, 64)
			if isInt(v) && v.Int() > n {
				res.add(name, fmt.Sprintf("%s must be at most %d", label, n))
			}
		}
	}
}

func isZeroString(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	default:
		return v.IsZero()
	}
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

// IsValidEmail checks the basic shape of an email address: one "@",
// non-empty local and domain parts, no leading/trailing/consecutive
// dots on either side, no whitespace.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	return validDotted(local) && validDotted(domain)
}

func validDotted(part string) bool {
	if part == "" {
		return false
	}
	if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
		return false
	}
	return !strings.Contains(part, "..")
}
