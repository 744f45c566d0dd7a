//
// (C) Copyright 2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

package asok

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// ReturnCodeField is the field in which the MDS reports the result
// of path operations.
const ReturnCodeField = "return_code"

const acceptedMsg = "Succeeded"

type (
	// Outcome is the verdict of a Validator.
	Outcome struct {
		Accepted bool
		Message  string
	}

	// Validator decides whether a command result is acceptable.
	// Implementations must be pure functions of their inputs.
	Validator interface {
		Validate(resp Response, status int) Outcome
	}

	// ValidatorFunc adapts a function to the Validator interface.
	ValidatorFunc func(resp Response, status int) Outcome

	// ExpectStatusAndField accepts a result if the exit status matches
	// ExpectedStatus and, when Field is set, the named field of the
	// response equals Expected. The status is always checked first; the
	// field is never examined when the status does not match.
	ExpectStatusAndField struct {
		ExpectedStatus int
		Field          string
		Expected       interface{}
	}
)

// Validate calls f(resp, status).
func (f ValidatorFunc) Validate(resp Response, status int) Outcome {
	return f(resp, status)
}

// Accept returns an accepting Outcome.
func Accept() Outcome {
	return Outcome{Accepted: true, Message: acceptedMsg}
}

// Reject returns a rejecting Outcome with the formatted message.
func Reject(format string, args ...interface{}) Outcome {
	return Outcome{Message: fmt.Sprintf(format, args...)}
}

// ExpectStatus returns a validator which only checks the exit status.
func ExpectStatus(status int) ExpectStatusAndField {
	return ExpectStatusAndField{ExpectedStatus: status}
}

// ExpectReturnCode returns a validator which requires a zero exit
// status and a return_code field equal to rc.
func ExpectReturnCode(rc int) ExpectStatusAndField {
	return ExpectStatusAndField{
		Field:    ReturnCodeField,
		Expected: rc,
	}
}

func (v ExpectStatusAndField) String() string {
	if v.Field == "" {
		return fmt.Sprintf("status == %d", v.ExpectedStatus)
	}
	return fmt.Sprintf("status == %d && %s == %v", v.ExpectedStatus, v.Field, v.Expected)
}

// Validate implements Validator.
func (v ExpectStatusAndField) Validate(resp Response, status int) Outcome {
	if status != v.ExpectedStatus {
		return Reject("admin socket command returned error %d (expected %d)", status, v.ExpectedStatus)
	}
	if v.Field == "" {
		return Accept()
	}

	if resp.Empty() {
		return Reject("response has no content; cannot read field %q (expected %v)", v.Field, v.Expected)
	}
	actual, found := resp.Field(v.Field)
	if !found {
		return Reject("field %q missing from response; expected %v", v.Field, v.Expected)
	}
	if !valuesEqual(actual, v.Expected) {
		return Reject("unexpectedly got %v instead of %v!", actual, v.Expected)
	}

	return Accept()
}

// valuesEqual compares a decoded JSON value against a Go value,
// treating numbers by value rather than by type.
func valuesEqual(actual, expected interface{}) bool {
	num, isNum := actual.(json.Number)
	if !isNum {
		return reflect.DeepEqual(actual, expected)
	}

	if expNum, ok := expected.(json.Number); ok {
		return num == expNum
	}

	ev := reflect.ValueOf(expected)
	switch ev.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := num.Int64()
		return err == nil && i == ev.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, err := num.Int64()
		return err == nil && i >= 0 && uint64(i) == ev.Uint()
	case reflect.Float32, reflect.Float64:
		f, err := num.Float64()
		return err == nil && f == ev.Float()
	default:
		return false
	}
}
