package main

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
)

// Forms are declared as structs: `form` names the field in the request
// body and `validate` lists its rules.

type registerForm struct {
	Email    string `form:"email" validate:"required,email,max=250"`
	Password string `form:"password" validate:"required,passwordlen"`
	Name     string `form:"name" validate:"required,max=250"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type postForm struct {
	Title    string `form:"title" validate:"required,max=250"`
	Subtitle string `form:"subtitle" validate:"required,max=250"`
	ImgURL   string `form:"img_url" validate:"required,url,max=250"`
	Body     string `form:"body" validate:"required"`
}

type commentForm struct {
	Comment string `form:"comment" validate:"required,max=250"`
}

type contactForm struct {
	Name    string `form:"name" validate:"required,max=250"`
	Email   string `form:"email" validate:"required,email"`
	Phone   string `form:"phone" validate:"max=32"`
	Message string `form:"message" validate:"required,max=5000"`
}

type settingsForm struct {
	Intro string `form:"intro" validate:"max=500"`
	About string `form:"about" validate:"max=10000"`
}

// fieldErrors maps a form field name to a message for the template.
type fieldErrors map[string]string

var (
	formDecoder = form.NewDecoder()
	validate    = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Length is counted in bytes, which is what bcrypt limits.
	v.RegisterValidation("passwordlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	return v
}

// decodeForm fills dst from the request body and validates it. A non-nil
// error means the body could not be parsed at all; validation problems are
// reported through the returned fieldErrors.
func decodeForm(r *http.Request, dst any) (fieldErrors, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return nil, err
	}
	trimStrings(dst)

	err := validate.Struct(dst)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	errs := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = validationMessage(fe)
		}
	}
	return errs, nil
}

// trimStrings strips surrounding whitespace from every string field, except
// passwords which are taken verbatim.
func trimStrings(dst any) {
	v := reflect.ValueOf(dst).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if f.Kind() != reflect.String || t.Field(i).Name == "Password" {
			continue
		}
		f.SetString(strings.TrimSpace(f.String()))
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "max":
		return fmt.Sprintf("Must be at most %s characters.", fe.Param())
	case "passwordlen":
		return fmt.Sprintf("Must be at most %d bytes.", maxPasswordBytes)
	default:
		return "Invalid value."
	}
}
