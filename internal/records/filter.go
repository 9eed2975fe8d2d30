package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elgs/gojq"
	"github.com/nsf/jsondiff"
)

// MatchesSubset is true when every property of subset appears in fields with the same value.
func MatchesSubset(fields Submission, subset json.RawMessage) (bool, error) {
	whole, err := json.Marshal(fields)
	if err != nil {
		return false, err
	}
	result, _ := jsondiff.Compare(whole, subset, &jsondiff.Options{})
	switch result {
	case jsondiff.FullMatch, jsondiff.SupersetMatch:
		return true, nil
	case jsondiff.SecondArgIsInvalidJson, jsondiff.BothArgsAreInvalidJson:
		return false, fmt.Errorf("invalid subset document %q", string(subset))
	default:
		return false, nil
	}
}

// FieldEquals reports whether the property at path holds value.  Missing properties never match.
func FieldEquals(fields Submission, path, value string) (bool, error) {
	if strings.TrimSpace(path) == "" {
		return false, errors.New("empty field path")
	}
	whole, err := json.Marshal(fields)
	if err != nil {
		return false, err
	}
	parser, err := gojq.NewStringQuery(string(whole))
	if err != nil {
		return false, err
	}
	found, err := parser.QueryToString(path)
	if err != nil {
		//gojq only reports missing paths here
		return false, nil
	}
	return found == value, nil
}
