package dictionary

import (
	"bytes"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ribeirogab/portfolio/internal/i18n"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field paths with the names used in the content files.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Loader serves the dictionary of every supported locale. Dictionaries are
// decoded and checked once in NewLoader and shared afterwards; callers must
// treat the returned values as read-only.
type Loader struct {
	locales i18n.Set
	dicts   map[i18n.Locale]*Dictionary
}

// NewLoader reads "<locale>.yaml" from fsys for every locale in the set,
// decodes and validates each document and checks that all of them share the
// same key structure.
func NewLoader(locales i18n.Set, fsys fs.FS) (*Loader, error) {
	docs := make(map[string][]byte)
	dicts := make(map[i18n.Locale]*Dictionary)

	for _, l := range locales.Locales() {
		data, err := fs.ReadFile(fsys, string(l)+".yaml")
		if err != nil {
			return nil, &LoadError{Locale: string(l), Cause: err}
		}
		d, err := Decode(data)
		if err != nil {
			return nil, &LoadError{Locale: string(l), Cause: err}
		}
		docs[string(l)] = data
		dicts[l] = d
	}

	if err := Parity(docs); err != nil {
		return nil, err
	}

	return &Loader{locales: locales, dicts: dicts}, nil
}

// Load returns the dictionary for a locale key. Keys outside the supported
// set fail with an *UnsupportedLocaleError.
func (l *Loader) Load(locale string) (*Dictionary, error) {
	d, ok := l.dicts[i18n.Locale(locale)]
	if !ok {
		return nil, &UnsupportedLocaleError{Locale: locale}
	}
	return d, nil
}

// Locales returns the set the loader was built for.
func (l *Loader) Locales() i18n.Set {
	return l.locales
}

// Decode parses one locale document. Unknown keys are rejected and every
// required value must be present.
func Decode(data []byte) (*Dictionary, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var d Dictionary
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary YAML: %w", err)
	}
	if err := Validate(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the required-field constraints declared on the Dictionary types.
func Validate(d *Dictionary) error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate dictionary: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		out.Errors = append(out.Errors, FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Dictionary."),
			Message: "failed on '" + msg + "'",
		})
	}
	return out
}
