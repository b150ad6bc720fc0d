package core

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so messages match the request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := ParseAmount(fl.Field().String())
		return err == nil
	})

	return v
}

// validateStruct runs the struct tags and converts failures into a ValidationError.
// The returned value is never nil; call Err on it.
func validateStruct(s any) *ValidationError {
	verr := &ValidationError{}
	err := validate.Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("request", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return "The " + label + " field is required."
	case "max":
		return "The " + label + " field must not be greater than " + fe.Param() + " characters."
	case "min":
		return "The " + label + " field must be at least " + fe.Param() + " characters."
	case "number":
		return "The " + label + " field must be an integer."
	case "amount":
		return "The " + label + " field must be a number."
	case "date":
		return "The " + label + " field must be a valid date."
	case "email":
		return "The " + label + " field must be a valid email address."
	case "oneof":
		return "The selected " + label + " is invalid."
	default:
		return "The " + label + " field is invalid."
	}
}

// CategoryInput is the create/update payload of a category.
type CategoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Validate trims the name and checks it.
func (in *CategoryInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	return validateStruct(in).Err()
}

// ExpenseInput is the create/update payload of an expense, as received.
type ExpenseInput struct {
	CategoryID  string `json:"category_id" validate:"required,number"`
	Amount      string `json:"amount" validate:"required,amount"`
	Description string `json:"description" validate:"max=255"`
	ExpenseDate string `json:"expense_date" validate:"required,date"`
}

// ExpenseFields is a validated ExpenseInput.
type ExpenseFields struct {
	CategoryID  int64
	Amount      Money
	Description *string
	Date        Date
}

// Parse validates the input and converts it into typed fields.
func (in ExpenseInput) Parse() (ExpenseFields, error) {
	in.CategoryID = strings.TrimSpace(in.CategoryID)
	in.ExpenseDate = strings.TrimSpace(in.ExpenseDate)
	if err := validateStruct(in).Err(); err != nil {
		return ExpenseFields{}, err
	}

	categoryID, err := strconv.ParseInt(in.CategoryID, 10, 64)
	if err != nil {
		return ExpenseFields{}, NewValidationError("category_id", "The category id field must be an integer.")
	}
	amount, _ := ParseAmount(in.Amount)
	date, _ := ParseDate(in.ExpenseDate)

	fields := ExpenseFields{CategoryID: categoryID, Amount: amount, Date: date}
	if desc := strings.TrimSpace(in.Description); desc != "" {
		fields.Description = &desc
	}
	return fields, nil
}

// ExpenseQuery holds the optional filters of an expense listing.
type ExpenseQuery struct {
	CategoryID string `json:"category_id" validate:"omitempty,number"`
	StartDate  string `json:"start_date" validate:"omitempty,date"`
	EndDate    string `json:"end_date" validate:"omitempty,date"`
}

// Filter validates the query and converts it into an ExpenseFilter.
func (q ExpenseQuery) Filter() (ExpenseFilter, error) {
	verr := validateStruct(q)
	if verr.HasErrors() {
		return ExpenseFilter{}, verr
	}

	var f ExpenseFilter
	if q.CategoryID != "" {
		id, err := strconv.ParseInt(q.CategoryID, 10, 64)
		if err != nil {
			return ExpenseFilter{}, NewValidationError("category_id", "The category id field must be an integer.")
		}
		f.CategoryID = &id
	}
	// A date range only applies when both bounds are given; a lone bound is ignored.
	if q.StartDate != "" && q.EndDate != "" {
		start, _ := ParseDate(q.StartDate)
		end, _ := ParseDate(q.EndDate)
		if end.Before(start) {
			return ExpenseFilter{}, endBeforeStart()
		}
		f.Start, f.End = &start, &end
	}
	return f, nil
}

// SummaryInput is the date range of a summary request. Both bounds are required.
type SummaryInput struct {
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date" validate:"required,date"`
}

// Range validates the input and returns the inclusive bounds.
func (in SummaryInput) Range() (Date, Date, error) {
	if err := validateStruct(in).Err(); err != nil {
		return Date{}, Date{}, err
	}
	start, _ := ParseDate(in.StartDate)
	end, _ := ParseDate(in.EndDate)
	if end.Before(start) {
		return Date{}, Date{}, endBeforeStart()
	}
	return start, end, nil
}

func endBeforeStart() *ValidationError {
	return NewValidationError("end_date", "The end date field must be a date after or equal to start date.")
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (in *LoginInput) Validate() error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return validateStruct(in).Err()
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (in *RegisterInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	return validateStruct(in).Err()
}

// ChartQuery selects which analytics view to render.
type ChartQuery struct {
	Kind string `json:"kind" validate:"required,oneof=category monthly"`
}

func (q ChartQuery) Validate() error {
	return validateStruct(q).Err()
}
