package movement

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldNames maps struct fields to the names users see in error messages.
var fieldNames = map[string]string{
	"Type":          "tipo",
	"Sector":        "settore",
	"PaymentMethod": "metodo_pagamento",
	"Category":      "categoria",
	"Description":   "descrizione",
	"Amount":        "importo",
}

func validateParams(p CreateParams) error {
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &ValidationError{Field: fieldNames[fe.Field()], Reason: reasonFor(fe)}
		}

		return &ValidationError{Field: "movimento", Reason: err.Error()}
	}

	switch {
	case !p.Type.Valid():
		return &ValidationError{Field: "tipo", Reason: "valore sconosciuto " + string(p.Type)}
	case !p.Sector.Valid():
		return &ValidationError{Field: "settore", Reason: "valore sconosciuto " + string(p.Sector)}
	case !p.PaymentMethod.Valid():
		return &ValidationError{Field: "metodo_pagamento", Reason: "valore sconosciuto " + string(p.PaymentMethod)}
	case !p.Category.Valid():
		return &ValidationError{Field: "categoria", Reason: "valore sconosciuto " + string(p.Category)}
	}

	return nil
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obbligatorio"
	case "gt":
		return "deve essere maggiore di zero"
	default:
		return strings.TrimSpace(fe.Tag() + " " + fe.Param())
	}
}
