//
// (C) Copyright 2018-2024 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package fault provides coded errors which carry a description
// of the failure and, where one is known, a suggested resolution.
package fault

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gregsfortytwo/ceph-qa-suite/fault/code"
)

const (
	// ResolutionEmpty is equivalent to an empty string.
	ResolutionEmpty = ""
	// ResolutionUnknown indicates that there is no known
	// resolution for the fault.
	ResolutionUnknown = "no known resolution"
	// ResolutionNone indicates that the fault cannot be
	// resolved.
	ResolutionNone = "none"

	// UnknownDomainStr is used when the fault has no domain.
	UnknownDomainStr = "unknown"
	// UnknownDescriptionStr is used when the fault has no description.
	UnknownDescriptionStr = "unknown fault"
)

var (
	// UnknownFault represents an unknown fault.
	UnknownFault = &Fault{
		Code:       code.Unknown,
		Resolution: ResolutionUnknown,
	}
)

// Fault represents a well-known error specific to a domain,
// along with an optional potential resolution for the error.
//
// It implements the error interface and can be used
// interchangeably with regular "dumb" errors.
type Fault struct {
	Domain      string    `json:"-"`
	Code        code.Code `json:"code"`
	Description string    `json:"description"`
	Reasons     []string  `json:"reasons,omitempty"`
	Resolution  string    `json:"resolution"`
}

// New returns a fault in the given domain.
func New(domain string, c code.Code, desc, res string) *Fault {
	return &Fault{
		Domain:      domain,
		Code:        c,
		Description: desc,
		Resolution:  res,
	}
}

func sanitizeDomain(inDomain string) (outDomain string) {
	outDomain = UnknownDomainStr
	if inDomain != "" {
		// sanitize the domain to ensure grep friendliness
		outDomain = strings.Join(
			strings.Fields(
				strings.Replace(inDomain, ":", " ", -1),
			), "_")
	}
	return
}

func (f *Fault) Error() string {
	desc := f.Description
	if desc == "" {
		desc = UnknownDescriptionStr
	}
	if len(f.Reasons) > 0 {
		desc = fmt.Sprintf("%s: %s", desc, strings.Join(f.Reasons, ", "))
	}
	return fmt.Sprintf("%s: code = %d description = %q",
		sanitizeDomain(f.Domain), f.Code, desc)
}

// WithReason returns a copy of the fault with an additional
// reason appended to its description.
func (f *Fault) WithReason(format string, args ...interface{}) *Fault {
	nf := *f
	nf.Reasons = append(append([]string{}, f.Reasons...), fmt.Sprintf(format, args...))
	return &nf
}

// Equals attempts to compare the given error to this one. If they both
// resolve to the same fault code, then they are considered equivalent.
func (f *Fault) Equals(raw error) bool {
	other, ok := errors.Cause(raw).(*Fault)
	if !ok {
		return false
	}
	return f.Code == other.Code
}

// Is allows a fault to be matched with errors.Is().
func (f *Fault) Is(raw error) bool {
	return f.Equals(raw)
}

// IsFault indicates whether or not the error is a Fault.
func IsFault(err error) bool {
	_, ok := errors.Cause(err).(*Fault)
	return ok
}

// HasCode indicates whether or not the error is a Fault
// with the given code.
func HasCode(err error, c code.Code) bool {
	f, ok := errors.Cause(err).(*Fault)
	return ok && f.Code == c
}

// ShowResolutionFor attempts to return the resolution string for the
// given error. If the error is not a fault or does not have a
// resolution set, then the string value of ResolutionUnknown
// is returned.
func ShowResolutionFor(raw error) string {
	fmtStr := "%s: code = %d resolution = %q"

	f, ok := errors.Cause(raw).(*Fault)
	if !ok {
		return fmt.Sprintf(fmtStr, UnknownDomainStr, code.Unknown, ResolutionUnknown)
	}
	if f.Resolution == ResolutionEmpty {
		return fmt.Sprintf(fmtStr, sanitizeDomain(f.Domain), f.Code, ResolutionUnknown)
	}
	return fmt.Sprintf(fmtStr, sanitizeDomain(f.Domain), f.Code, f.Resolution)
}

// HasResolution indicates whether or not the error has a resolution
// defined.
func HasResolution(raw error) bool {
	f, ok := errors.Cause(raw).(*Fault)
	if !ok || f.Resolution == ResolutionEmpty {
		return false
	}
	return true
}
