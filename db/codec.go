package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// I messaggi usano i nomi JSON dei campi
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(fld.Name)
		}
		return name
	})
	return v
}

// validateRecord controlla i vincoli dichiarati nei tag `validate` dei modelli
func validateRecord(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return validationError("dati non validi: %v", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace senza il nome del tipo radice, es. "comments[0].text"
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		if strings.HasPrefix(fe.Tag(), "required") {
			fields = append(fields, fmt.Sprintf("%s obbligatorio", ns))
		} else {
			fields = append(fields, fmt.Sprintf("%s non valido (%s)", ns, fe.Tag()))
		}
	}
	return validationError("%s", strings.Join(fields, ", "))
}

// encodeRecords serializza una lista incorporata; nil diventa "[]"
func encodeRecords[T any](records []T) (string, error) {
	if records == nil {
		records = []T{}
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", dbError("errore nella serializzazione JSON", err)
	}
	return string(b), nil
}

// decodeRecords legge una lista incorporata salvata come testo.
// NULL, stringa vuota e "null" diventano una lista vuota; JSON malformato o record
// che non rispettano lo schema sono errori del database.
func decodeRecords[T any](column sql.NullString) ([]T, error) {
	raw := strings.TrimSpace(column.String)
	if !column.Valid || raw == "" || raw == "null" {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, &Error{Kind: KindDatabase, Message: "JSON salvato non valido", Err: err}
	}
	if records == nil {
		records = []T{}
	}
	for i := range records {
		if err := validate.Struct(records[i]); err != nil {
			return nil, &Error{Kind: KindDatabase, Message: fmt.Sprintf("record %d del JSON salvato non valido", i), Err: err}
		}
	}
	return records, nil
}

// emptyIfNil garantisce che le liste incorporate siano serializzate come [] e non null
func emptyIfNil[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
