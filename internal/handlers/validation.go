package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/models"
)

// ValidationError is rendered as a 422 with one entry per offending field.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func missingField(loc ...string) *ValidationError {
	return &ValidationError{Fields: []models.FieldError{{
		Loc:  loc,
		Msg:  "field required",
		Type: "value_error.missing",
	}}}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodes a JSON body into out and enforces its validate tags.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &ValidationError{Fields: []models.FieldError{{
			Loc:  []string{"body"},
			Msg:  err.Error(),
			Type: "value_error.jsondecode",
		}}}
	}

	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}

		result := &ValidationError{}
		for _, fe := range verrs {
			fieldErr := models.FieldError{
				Loc:  []string{"body", fe.Field()},
				Msg:  "field required",
				Type: "value_error.missing",
			}
			if fe.Tag() != "required" {
				fieldErr.Msg = "failed on the '" + fe.Tag() + "' rule"
				fieldErr.Type = "value_error." + fe.Tag()
			}
			result.Fields = append(result.Fields, fieldErr)
		}
		return result
	}

	return nil
}
