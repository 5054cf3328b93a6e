package forms

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRe = regexp.MustCompile(`^[0-9]{12}$`)
	ymdRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// New builds a validator with the domain validations registered.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone12", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if !ymdRe.MatchString(raw) {
			return false
		}
		_, err := time.Parse("2006-01-02", raw)
		return err == nil
	})
	return v
}

// Rule pairs a validator tag with the message reported when it fails.
type Rule struct {
	Tag     string
	Message string
}

// Field binds one form value to its rules. Values are validated as entered;
// callers trim where the contract demands it.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// Errors maps field names to messages. A nil map means the input is valid.
type Errors map[string]string

// Valid reports whether no field failed.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Validate checks each field against its rules in order, reporting the first
// failing rule per field. It never panics on malformed input: an unknown tag
// is reported as that rule's failure.
func Validate(v *validator.Validate, fields ...Field) Errors {
	var errs Errors
	for _, field := range fields {
		for _, rule := range field.Rules {
			if err := checkVar(v, field.Value, rule.Tag); err != nil {
				if errs == nil {
					errs = make(Errors)
				}
				errs[field.Name] = rule.Message
				break
			}
		}
	}
	return errs
}

func checkVar(v *validator.Validate, value, tag string) (err error) {
	defer func() {
		if recover() != nil {
			err = &validator.InvalidValidationError{}
		}
	}()
	return v.Var(value, tag)
}
