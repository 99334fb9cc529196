package vercel

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// DecodeProject decodes one project record. Fields whose JSON type does
// not match are left zero and reported through mismatch; err is set only
// when data is not a project object at all.
func DecodeProject(data []byte) (p Project, mismatch error, err error) {
	mismatch, ok := decodeLenient(data, &p)
	if !ok {
		return Project{}, nil, fmt.Errorf("decode project: %w", mismatch)
	}
	return p, mismatch, nil
}

// UnmarshalJSON decodes each project on its own so one record with an
// unexpected field type does not fail the whole list. Elements that are
// not objects, null included, are dropped; all problems are kept in Malformed.
func (l *ProjectList) UnmarshalJSON(data []byte) error {
	var raw struct {
		Projects   []json.RawMessage `json:"projects"`
		Pagination json.RawMessage   `json:"pagination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Pagination = raw.Pagination
	l.Projects, l.Malformed = decodeEach[Project]("project", raw.Projects)
	return nil
}

// UnmarshalJSON decodes each deployment on its own, like ProjectList.
func (l *DeploymentList) UnmarshalJSON(data []byte) error {
	var raw struct {
		Deployments []json.RawMessage `json:"deployments"`
		Pagination  json.RawMessage   `json:"pagination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Pagination = raw.Pagination
	l.Deployments, l.Malformed = decodeEach[Deployment]("deployment", raw.Deployments)
	return nil
}

func decodeEach[T any](kind string, items []json.RawMessage) ([]T, []error) {
	out := make([]T, 0, len(items))
	var problems []error
	for i, item := range items {
		if bytes.Equal(bytes.TrimSpace(item), []byte("null")) {
			continue
		}
		var v T
		mismatch, ok := decodeLenient(item, &v)
		if mismatch != nil {
			problems = append(problems, fmt.Errorf("%s %d: %w", kind, i, mismatch))
		}
		if ok {
			out = append(out, v)
		}
	}
	return out, problems
}

// decodeLenient unmarshals data into v. encoding/json keeps decoding past
// a field of the wrong type and reports the first one afterwards, so such
// errors leave v usable (ok is true). A mismatch of the value itself or a
// syntax error leaves nothing usable.
func decodeLenient(data []byte, v any) (mismatch error, ok bool) {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil, true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return err, true
	}
	return err, false
}
