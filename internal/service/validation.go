package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"order-desk/internal/models"
)

const (
	MsgFirstNameRequired  = "Il nome è obbligatorio."
	MsgLastNameRequired   = "Il cognome è obbligatorio."
	MsgCodeNotInteger     = "Il codice deve essere un numero intero."
	MsgPickupDateRequired = "La data di ritiro è obbligatoria."
	MsgMerchandiseEmpty   = "Aggiungere almeno un articolo di merce."
	MsgItemCodeFormat     = "Il codice merce deve essere di 8 cifre numeriche."
	MsgItemNameRequired   = "Il nome dell'oggetto non può essere vuoto."
)

var (
	itemCodePattern = regexp.MustCompile(`^\d{8}$`)
	digitsPattern   = regexp.MustCompile(`^\d+$`)
)

var fieldMessages = map[string]string{
	"firstName":   MsgFirstNameRequired,
	"lastName":    MsgLastNameRequired,
	"code":        MsgCodeNotInteger,
	"pickupDate":  MsgPickupDateRequired,
	"merchandise": MsgMerchandiseEmpty,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "digits", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !digitsPattern.MatchString(s) {
			return false
		}
		_, err := strconv.Atoi(s)
		return err == nil
	})
	mustRegister(v, "itemcode", func(fl validator.FieldLevel) bool {
		return itemCodePattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// ValidateOrder returns field name -> message for every problem of d, or an
// empty map. Invalid merchandise codes accumulate into the single
// "merchandise" entry in list order.
func ValidateOrder(d models.Draft) map[string]string {
	errs := map[string]string{}

	if err := validate.Struct(d); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				errs[fe.Field()] = fieldMessages[fe.Field()]
			}
		}
	}

	for _, item := range d.Merchandise {
		if validate.Var(item.ItemCode, "itemcode") == nil {
			continue
		}
		if cur, ok := errs["merchandise"]; ok {
			errs["merchandise"] = cur + fmt.Sprintf(" Il codice merce '%s' non è valido.", item.ItemCode)
		} else {
			errs["merchandise"] = fmt.Sprintf("Il codice merce '%s' non è valido (deve essere di 8 cifre).", item.ItemCode)
		}
	}
	return errs
}

// ValidateMerchandiseItem checks one item before it joins the list. The code
// is checked first.
func ValidateMerchandiseItem(code, name string) error {
	err := validate.Struct(models.MerchandiseItem{ItemCode: code, ItemName: name})
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate merchandise item: %w", err)
	}
	failed := map[string]bool{}
	for _, fe := range ve {
		failed[fe.Field()] = true
	}
	if failed["itemCode"] {
		return &ItemCodeError{Code: code, Message: MsgItemCodeFormat}
	}
	return &ItemNameError{Message: MsgItemNameRequired}
}
