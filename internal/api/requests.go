package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/codeflash/internal/errors"
	"github.com/vytor/codeflash/internal/models"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("deckcolor", func(fl validator.FieldLevel) bool {
		return models.IsValidDeckColor(fl.Field().String())
	})
	return v
}

type createDeckRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,deckcolor"`
	Icon        string `json:"icon" validate:"max=50"`
}

type updateDeckRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,deckcolor"`
	Icon        *string `json:"icon" validate:"omitempty,max=50"`
}

type createCardRequest struct {
	DeckID   int64  `json:"deck_id" validate:"required,gt=0"`
	Front    string `json:"front" validate:"required"`
	Back     string `json:"back" validate:"required"`
	Language string `json:"language" validate:"required,max=50"`
}

type updateCardRequest struct {
	DeckID   *int64  `json:"deck_id" validate:"omitempty,gt=0"`
	Front    *string `json:"front"`
	Back     *string `json:"back"`
	Language *string `json:"language" validate:"omitempty,max=50"`
}

type reviewRequest struct {
	Quality   *int     `json:"quality" validate:"required"`
	TimeTaken *float64 `json:"time_taken" validate:"omitempty,gte=0"`
}

// decodeJSON reads a JSON body into dst and validates it.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid JSON body: " + err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewBadRequestError(err.Error())
	}
	fe := fieldErrs[0]
	var reason string
	switch fe.Tag() {
	case "required":
		reason = "is required"
	case "deckcolor":
		reason = "must be a hex color like #7C3AED"
	case "max":
		reason = fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		reason = fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		reason = fmt.Sprintf("must be at least %s", fe.Param())
	default:
		reason = "is invalid"
	}
	return errors.NewValidationError(fe.Field(), reason)
}
