package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// fieldTranslation overrides the default English message of a tag.
type fieldTranslation struct {
	tag     string
	message string
	params  func(fe validator.FieldError) []string
}

var fieldTranslations = []fieldTranslation{
	{
		tag:     "file",
		message: "{0} must be an existing and readable file",
	},
	{
		tag:     "oneof",
		message: "{0} must be one of: {1} (got {2})",
		params: func(fe validator.FieldError) []string {
			return []string{
				strings.Join(strings.Fields(fe.Param()), ", "),
				fmt.Sprintf("%q", fe.Value()),
			}
		},
	},
	{
		tag:     "required_if",
		message: "{0} is required when {1} is {2}",
		params: func(fe validator.FieldError) []string {
			fields := strings.Fields(fe.Param())
			if len(fields) < 2 {
				return []string{fe.Param(), ""}
			}
			return []string{strings.ToLower(fields[0]), fields[1]}
		},
	},
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	// Report the yaml key instead of the Go field name in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	for _, ft := range fieldTranslations {
		if err := registerTranslation(validate, trans, ft); err != nil {
			return nil, nil, err
		}
	}

	return validate, trans, nil
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, ft fieldTranslation) error {
	err := validate.RegisterTranslation(ft.tag, trans, func(ut ut.Translator) error {
		return ut.Add(ft.tag, ft.message, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		params := []string{configKey(fe)}
		if ft.params != nil {
			params = append(params, ft.params(fe)...)
		}
		t, err := ut.T(ft.tag, params...)
		if err != nil {
			return fe.Error()
		}
		return t
	})
	if err != nil {
		return fmt.Errorf("failed to register %s translation: %w", ft.tag, err)
	}
	return nil
}

// configKey is the dotted yaml key of a field, such as dictionary.driver.
func configKey(fe validator.FieldError) string {
	return strings.TrimPrefix(fe.Namespace(), "Config.")
}

func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o400 != 0
}
