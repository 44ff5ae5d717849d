// Package importrow turns header-keyed CSV rows into typed, validated
// records. A row that fails a required-field or format check is rejected
// with a reason instead of being stored with empty values.
package importrow

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/youth-league/internal/platform/csvcodec"
)

// Rejection explains why a source line was not imported.
type Rejection struct {
	Line   int
	Reason string
}

// Record is an accepted row and the line it came from.
type Record[T any] struct {
	Line int
	Row  T
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func rowValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("csv"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		registerRules(v)
		validate = v
	})
	return validate
}

// Bind converts every row of a normalized table into T. Rows that cannot be
// converted or validated become rejections.
func Bind[T any](table csvcodec.Table) ([]Record[T], []Rejection) {
	var (
		accepted []Record[T]
		rejected []Rejection
	)
	for i, row := range table.Rows {
		line := table.Line(i)

		var rec T
		if err := bindRow(row, &rec); err != nil {
			rejected = append(rejected, Rejection{Line: line, Reason: err.Error()})
			continue
		}
		if err := rowValidator().Struct(rec); err != nil {
			rejected = append(rejected, Rejection{Line: line, Reason: describe(err)})
			continue
		}
		accepted = append(accepted, Record[T]{Line: line, Row: rec})
	}
	return accepted, rejected
}

// MissingColumns lists the required columns of T absent from headers.
func MissingColumns[T any](headers []string) []string {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[h] = struct{}{}
	}

	var missing []string
	typ := reflect.TypeOf((*T)(nil)).Elem()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		col, opts, _ := strings.Cut(f.Tag.Get("csv"), ",")
		if col == "" || col == "-" || opts != "column" {
			continue
		}
		if _, ok := have[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func bindRow(row csvcodec.Row, dst any) error {
	v := reflect.ValueOf(dst).Elem()
	typ := v.Type()

	var problems []string
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		col, _, _ := strings.Cut(f.Tag.Get("csv"), ",")
		if col == "" || col == "-" {
			continue
		}
		raw := strings.TrimSpace(row.Get(col))
		if err := setField(v.Field(i), raw); err != nil {
			problems = append(problems, fmt.Sprintf("%s %v", col, err))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func setField(field reflect.Value, raw string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := parseFlag(raw)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Pointer:
		if field.Type().Elem().Kind() != reflect.Bool {
			return fmt.Errorf("unsupported field type %s", field.Type())
		}
		if raw == "" {
			return nil
		}
		b, err := parseFlag(raw)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(&b))
	case reflect.Int:
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("must be a whole number")
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		field.SetFloat(n)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "false", "no", "n", "0":
		return false, nil
	case "true", "yes", "y", "1", "x":
		return true, nil
	default:
		return false, fmt.Errorf("must be true or false, got %q", raw)
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeField(fe))
	}
	return strings.Join(parts, "; ")
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "datetime":
		return fmt.Sprintf("%s must be a date like %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "volunteer_role":
		return fmt.Sprintf("%s %q is not a known role", fe.Field(), fe.Value())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", fe.Field(), strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
