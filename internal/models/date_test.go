package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var p struct {
		DOB Date `json:"dob"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"dob":"1990-02-28"}`), &p))
	assert.Equal(t, "1990-02-28", p.DOB.String())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dob":"1990-02-28"}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"dob":null}`), &p))
	assert.True(t, p.DOB.IsZero())

	out, err = json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dob":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"dob":"28/02/1990"}`), &p))
}

func TestDateScanAndValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-09", d.String())

	require.NoError(t, d.Scan([]byte("2023-12-31")))
	assert.Equal(t, "2023-12-31", d.String())

	require.NoError(t, d.Scan("2023-01-05 00:00:00"))
	assert.Equal(t, "2023-01-05", d.String())

	require.NoError(t, d.Scan(nil))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Error(t, d.Scan(42))
}

func TestDateComparisons(t *testing.T) {
	a, _ := ParseDate("2024-01-01")
	b := a.AddDays(90)

	assert.Equal(t, "2024-03-31", b.String())
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, a, NewDate(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)))
}

func TestPatientGender(t *testing.T) {
	cases := map[string]string{
		"Male":    "male",
		" m ":     "male",
		"FEMALE":  "female",
		"f":       "female",
		"unknown": "",
		"":        "",
	}
	for in, want := range cases {
		p := Patient{PatientGender: in}
		assert.Equal(t, want, p.Gender(), in)
	}
}
