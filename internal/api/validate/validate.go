package validate

import (
	"strings"

	"github.com/shopspring/decimal"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: "required"}
	}
	return nil
}

func Positive(field string, v decimal.Decimal) *ErrField {
	if !v.IsPositive() {
		return &ErrField{Field: field, Msg: "must be positive"}
	}
	return nil
}
