package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StringList holds the ordered list attributes of a product (colors, sizes,
// images, tags). It decodes from a BSON array or a single string and stays nil
// when the attribute is absent, which serializes as JSON null.
type StringList []string

// Contains reports whether value is an exact member of the list.
func (s StringList) Contains(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// ContainsSubstringFold reports whether any element contains needle,
// ignoring case.
func (s StringList) ContainsSubstringFold(needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range s {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

// Joined renders the list the way export formats expect it.
func (s StringList) Joined() string {
	return strings.Join(s, ", ")
}

// UnmarshalBSONValue accepts both string and array BSON types so documents
// written by hand (a single tag, a single image) still decode.
func (s *StringList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*s = nil
		return nil
	case bsontype.Array:
		var values []string
		if err := bson.UnmarshalValue(t, data, &values); err != nil {
			return err
		}
		*s = values
		return nil
	case bsontype.String:
		var value string
		if err := bson.UnmarshalValue(t, data, &value); err != nil {
			return err
		}

		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			*s = StringList{}
			return nil
		}

		*s = StringList{trimmed}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into StringList", t)
	}
}

// MarshalBSONValue stores nil lists as null and everything else as an array.
func (s StringList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if s == nil {
		return bsontype.Null, nil, nil
	}
	return bson.MarshalValue([]string(s))
}
