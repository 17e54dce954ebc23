package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/SscSPs/mini_bank_api/internal/apperrors"
	"github.com/SscSPs/mini_bank_api/internal/core/domain"
	"github.com/SscSPs/mini_bank_api/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// RegisterValidators installs the custom validation tags used by the dto
// package on gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterCustomTypeFunc(dto.PatchFieldValue, dto.PatchField[string]{}, dto.PatchField[domain.AccountStatus]{})
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("numericid", validateNumericID)
		_ = v.RegisterValidation("nonnegative", validateNonNegative)
		_ = v.RegisterValidation("balance", validateBalance)
	})
}

// fieldName reports fields by their wire name so issues match the request.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

func validateNumericID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if !dto.IsDigits(s) {
		return false
	}
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func validateNonNegative(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

// validateBalance rejects amounts the balance column would round or overflow.
func validateBalance(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && domain.BalanceFits(d)
}

// decodeStrictJSON decodes the body rejecting unknown fields, then validates it.
func decodeStrictJSON(c *gin.Context, obj any) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return binding.Validator.ValidateStruct(obj)
}

// validationError converts a binding or decoding failure into the 400
// taxonomy error with one issue per rejected field.
func validationError(err error) *apperrors.AppError {
	var (
		issues    []dto.ValidationIssue
		verrs     validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			issues = append(issues, dto.ValidationIssue{
				Path:    fe.Field(),
				Message: issueMessage(fe),
				Code:    fe.Tag(),
			})
		}
	case errors.As(err, &typeErr):
		message := fmt.Sprintf("expected %s, received %s", typeErr.Type, typeErr.Value)
		switch {
		case typeErr.Type == dto.NumericIDType:
			message = "must be an integer or a numeric string"
		case typeErr.Value == "null":
			message = "must not be null"
		}
		issues = append(issues, dto.ValidationIssue{Path: typeErr.Field, Message: message, Code: "invalid_type"})
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		issues = append(issues, dto.ValidationIssue{Message: "request body must be valid JSON", Code: "invalid_json"})
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		issues = append(issues, dto.ValidationIssue{Path: field, Message: "unrecognized field", Code: "unrecognized_keys"})
	default:
		issues = append(issues, dto.ValidationIssue{Message: err.Error(), Code: "invalid_input"})
	}

	appErr := apperrors.BadRequest(apperrors.CodeValidationError, "Validation failed", map[string]any{"issues": issues})
	appErr.Err = err
	return appErr
}

func issueMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "currency":
		return "must be exactly 3 letters"
	case "numericid":
		return "must be a numeric string"
	case "nonnegative":
		return "must not be negative"
	case "balance":
		return fmt.Sprintf("must have at most %d integer digits and %d decimal places",
			domain.BalanceIntegerDigits, domain.BalanceScale)
	default:
		return "is invalid"
	}
}

// emptyPatchError is returned for an update body without any field.
func emptyPatchError() *apperrors.AppError {
	return apperrors.BadRequest(apperrors.CodeValidationError, "Validation failed", map[string]any{
		"issues": []dto.ValidationIssue{{
			Message: "At least one field (nickname/status) must be provided",
			Code:    "custom",
		}},
	})
}
