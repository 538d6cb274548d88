package validators

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"techstorm/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	// required only checks that a *Timestamp is non-nil, so "" slips through as the zero time
	_ = v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		ts, ok := fl.Field().Interface().(Timestamp)
		return !ok || !ts.IsZero()
	})
	return v
}

// Trimmer is implemented by request types that normalize themselves before validation
type Trimmer interface {
	Trim()
}

// Check validates s and returns field -> message, nil when valid
func Check(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"body": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fieldKey(fe)
		if _, exists := out[key]; !exists {
			out[key] = message(fe)
		}
	}
	return out
}

// fieldKey drops the top-level struct name: RegisterRequest.email -> email
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func label(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func message(fe validator.FieldError) string {
	name := label(fe.Field())
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_if", "required_without", "filled":
		return name + " is required!"
	case "email":
		return "Invalid email address!"
	case "url":
		return name + " must be a valid URL!"
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters long!", name, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s item(s)!", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s!", name, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters long!", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s!", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s!", name, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s!", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s!", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long!", name, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s!", name, label(fe.Param()))
	case "ltefield":
		return fmt.Sprintf("%s cannot exceed %s!", name, label(fe.Param()))
	case "numeric":
		return name + " must contain digits only!"
	}
	return name + " is invalid!"
}

// Body parses the JSON body into T, trims it, validates it and stores it under key
func Body[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if t, ok := any(reqData).(Trimmer); ok {
			t.Trim()
		}

		if errs := Check(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

// Query is Body for query strings
func Query[T any](key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if t, ok := any(reqData).(Trimmer); ok {
			t.Trim()
		}

		if errs := Check(reqData); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

// ParamID parses a positive integer route param into c.Locals(key) as uint
func ParamID(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, fmt.Sprintf("Invalid %s!", label(param)), nil)
		}
		c.Locals(key, uint(id))
		return c.Next()
	}
}

// ID is ParamID for the conventional ":id" param stored under "id"
func ID() fiber.Handler {
	return ParamID("id", "id")
}
