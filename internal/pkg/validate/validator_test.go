package validate

import (
	"errors"
	"testing"
)

type item struct {
	Name string `json:"name" validate:"required"`
	Kind string `json:"kind" validate:"oneof=easy hard"`
}

type payload struct {
	Query string `json:"query" validate:"required"`
	Items []item `json:"items" validate:"min=1,dive"`
}

func TestValidateFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&payload{Items: []item{{Name: "a", Kind: "easy"}, {Kind: "other"}}})
	var fieldsErr *FieldsError
	if !errors.As(err, &fieldsErr) {
		t.Fatalf("err = %v, want *FieldsError", err)
	}

	for _, name := range []string{"query", "items[1].name", "items[1].kind"} {
		if _, ok := fieldsErr.Fields[name]; !ok {
			t.Errorf("missing field %q in %v", name, fieldsErr.Fields)
		}
	}
	if msg := fieldsErr.Fields["query"]; msg != "query is a required field" {
		t.Errorf("query message = %q", msg)
	}
}

func TestValidateOK(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&payload{Query: "q", Items: []item{{Name: "a", Kind: "hard"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
