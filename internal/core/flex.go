package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// The model is loose about scalar types: "sets": 3 and "sets": "3" both
// show up, as do "reps": "8-12" and "calories": "450 kcal". These types
// accept either form so a plan is never rejected over it.

// FlexString holds a value the model may send as a string or a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(data))
	return nil
}

func (f FlexString) String() string { return string(f) }

// Number is a quantity the model may send as a number or as a string with a
// numeric prefix.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number(leadingNumber(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("number: %w", err)
	}
	*n = Number(f)
	return nil
}

// String formats without a trailing ".0" for whole values.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func leadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (unicode.IsDigit(rune(s[end])) || s[end] == '.') {
		end++
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return f
}

// Minutes is a workout duration. The wizard stores it as "45" while API
// callers send 45.
type Minutes int

func (m *Minutes) UnmarshalJSON(data []byte) error {
	var n Number
	if err := n.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("workoutDuration: %w", err)
	}
	*m = Minutes(n)
	return nil
}

// StringList accepts a JSON array of strings or a single string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}
	var items []FlexString
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	out := make(StringList, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	*l = out
	return nil
}

// Modifications are the easier/harder variants of an exercise. The model
// sends an object, a free-text note, or a list of notes.
type Modifications struct {
	Easier string `json:"easier,omitempty"`
	Harder string `json:"harder,omitempty"`
	Note   string `json:"-"`
}

// IsZero reports whether no modification was given.
func (m Modifications) IsZero() bool {
	return m.Easier == "" && m.Harder == "" && m.Note == ""
}

func (m *Modifications) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Modifications{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Modifications{Note: s}
		return nil
	}
	if data[0] == '[' {
		var notes StringList
		if err := json.Unmarshal(data, &notes); err != nil {
			return err
		}
		*m = Modifications{Note: strings.Join(notes, "; ")}
		return nil
	}
	type plain Modifications
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Modifications(p)
	return nil
}

func (m Modifications) MarshalJSON() ([]byte, error) {
	if m.Note != "" && m.Easier == "" && m.Harder == "" {
		return json.Marshal(m.Note)
	}
	type plain Modifications
	return json.Marshal(plain(m))
}
