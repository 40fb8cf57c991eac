package serializers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ClientInput holds the writable client fields. ClientName is nil when a
// partial update leaves it untouched.
type ClientInput struct {
	ClientName *string
}

// ProjectInput is the validated project creation payload. ClientID and
// UserIDs are read from the same raw body as the declared project_name.
type ProjectInput struct {
	ProjectName string
	ClientID    int64
	UserIDs     []int64
}

// ParseClientCreate validates a client creation payload. Read-only fields
// such as created_by are ignored.
func ParseClientCreate(body []byte) (ClientInput, error) {
	return ParseClientUpdate(body, false)
}

// ParseClientUpdate validates a client update payload. When partial is
// true every field is optional.
func ParseClientUpdate(body []byte, partial bool) (ClientInput, error) {
	var in ClientInput
	fields, verr := decodeObject(body)
	if verr != nil {
		return in, verr
	}

	v := &ValidationError{}
	if raw, ok := fields["client_name"]; ok {
		if name, ok := parseName(v, "client_name", raw); ok {
			in.ClientName = &name
		}
	} else if !partial {
		v.Add("client_name", msgRequired)
	}
	return in, v.Err()
}

// ParseProjectCreate validates a project creation payload.
func ParseProjectCreate(body []byte) (ProjectInput, error) {
	var in ProjectInput
	fields, verr := decodeObject(body)
	if verr != nil {
		return in, verr
	}

	v := &ValidationError{}
	if raw, ok := fields["project_name"]; ok {
		if name, ok := parseName(v, "project_name", raw); ok {
			in.ProjectName = name
		}
	} else {
		v.Add("project_name", msgRequired)
	}

	if raw, ok := fields["client_id"]; ok && !isNull(raw) {
		id, err := parseID(raw)
		switch {
		case err != nil:
			v.Add("client_id", msgNotInteger)
		case id <= 0:
			v.Add("client_id", msgMinID)
		}
		in.ClientID = id
	} else {
		v.Add("client_id", msgRequired)
	}

	in.UserIDs = []int64{}
	if raw, ok := fields["users"]; ok && !isNull(raw) {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			v.Add("users", fmt.Sprintf("Expected a list of items but got type %q.", jsonType(raw)))
		} else {
			for i, item := range items {
				id, err := parseID(item)
				if err != nil {
					v.Add("users", fmt.Sprintf("Item %d: %s", i, msgNotInteger))
					continue
				}
				in.UserIDs = append(in.UserIDs, id)
			}
		}
	}

	return in, v.Err()
}

// ListQuery holds the optional list filters accepted by collection endpoints.
type ListQuery struct {
	Search        string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// ParseListQuery reads search, created_after and created_before through get,
// typically gin's c.Query.
func ParseListQuery(get func(string) string) (ListQuery, error) {
	q := ListQuery{Search: strings.TrimSpace(get("search"))}
	v := &ValidationError{}
	if strings.ContainsRune(q.Search, 0) {
		v.Add("search", msgNullChar)
		q.Search = ""
	}
	q.CreatedAfter = parseTimeBound(v, "created_after", get("created_after"))
	q.CreatedBefore = parseTimeBound(v, "created_before", get("created_before"))
	return q, v.Err()
}

func parseTimeBound(v *ValidationError, field, value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return &t
	}
	v.Add(field, msgInvalidDate)
	return nil
}

func decodeObject(body []byte) (map[string]json.RawMessage, *ValidationError) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	if !json.Valid(body) {
		return nil, NewValidationError(NonFieldErrors, msgInvalidJSON)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, NewValidationError(NonFieldErrors, msgNotObject)
	}
	return fields, nil
}

func parseName(v *ValidationError, field string, raw json.RawMessage) (string, bool) {
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		v.Add(field, msgNotString)
		return "", false
	}

	s = strings.TrimSpace(s)
	switch {
	case s == "":
		v.Add(field, msgBlank)
		return "", false
	case strings.ContainsRune(s, 0):
		v.Add(field, msgNullChar)
		return "", false
	case utf8.RuneCountInString(s) > maxNameLength:
		v.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
		return "", false
	}
	return s, true
}

// parseID accepts a JSON integer or a string holding one.
func parseID(raw json.RawMessage) (int64, error) {
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var val interface{}
	if err := dec.Decode(&val); err != nil {
		return 0, err
	}

	switch x := val.(type) {
	case json.Number:
		n = x
	case string:
		n = json.Number(strings.TrimSpace(x))
	default:
		return 0, fmt.Errorf("unexpected %s", jsonType(raw))
	}
	return strconv.ParseInt(string(n), 10, 64)
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func jsonType(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "null"
	}
	switch trimmed[0] {
	case '"':
		return "str"
	case '{':
		return "dict"
	case '[':
		return "list"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
