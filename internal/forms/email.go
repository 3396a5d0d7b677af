package forms

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailTag is the validator tag for the storefront's loose email rule:
// something@something.something without whitespace.
const EmailTag = "storefront_email"

// jsSpace is the whitespace set browsers use for \s and String.prototype.trim.
// RE2's \s is ASCII only, so the class is spelled out.
const jsSpace = `\t\n\x{0b}\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var emailPattern = regexp.MustCompile(`^[^` + jsSpace + `@]+@[^` + jsSpace + `@]+\.[^` + jsSpace + `@]+$`)

// RegisterEmailValidation installs EmailTag on v.
func RegisterEmailValidation(v *validator.Validate) error {
	return v.RegisterValidation(EmailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterEmailValidation(v); err != nil {
		panic(err)
	}
	return v
}

func isFormSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}

// trimInput strips the same characters a browser's trim() does.
func trimInput(s string) string {
	return strings.TrimFunc(s, isFormSpace)
}
