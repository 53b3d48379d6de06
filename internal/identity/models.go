// Package identity tracks one user's KYC verification record through its
// lifecycle. The issuer flow reads the status as a publication gate; nothing
// here ever reads release data.
package identity

import (
	derrors "release-gateway/pkg/domain-errors"
)

// Status is the verification lifecycle state.
//
// The intended graph is guest → pending → {ok, reject}, with reset as the
// only way back to guest. In this demo the status is freely reassignable
// through the manual control surface that substitutes the provider callback;
// a production integration must tighten the transitions before reuse.
type Status string

const (
	StatusGuest   Status = "guest"
	StatusPending Status = "pending"
	StatusOK      Status = "ok"
	StatusReject  Status = "reject"
)

var validStatuses = map[Status]bool{
	StatusGuest:   true,
	StatusPending: true,
	StatusOK:      true,
	StatusReject:  true,
}

// ParseStatus constructs a Status from external input.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid identity status")
	}
	return st, nil
}

// ProfileField names one free-text profile field.
type ProfileField string

const (
	FieldFullName       ProfileField = "fullName"
	FieldDateOfBirth    ProfileField = "dob"
	FieldCitizenship    ProfileField = "citizenship"
	FieldDocumentNumber ProfileField = "docNumber"
	FieldAddress        ProfileField = "address"
)

var validProfileFields = map[ProfileField]bool{
	FieldFullName:       true,
	FieldDateOfBirth:    true,
	FieldCitizenship:    true,
	FieldDocumentNumber: true,
	FieldAddress:        true,
}

// ParseProfileField constructs a ProfileField from external input.
func ParseProfileField(s string) (ProfileField, error) {
	f := ProfileField(s)
	if !validProfileFields[f] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid profile field")
	}
	return f, nil
}

// FileSlot names one of the three required attachments.
type FileSlot string

const (
	SlotIDFront FileSlot = "idFront"
	SlotIDBack  FileSlot = "idBack"
	SlotSelfie  FileSlot = "selfie"
)

var validFileSlots = map[FileSlot]bool{
	SlotIDFront: true,
	SlotIDBack:  true,
	SlotSelfie:  true,
}

// ParseFileSlot constructs a FileSlot from external input.
func ParseFileSlot(s string) (FileSlot, error) {
	slot := FileSlot(s)
	if !validFileSlots[slot] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid file slot")
	}
	return slot, nil
}

// ConsentField names one of the two required consents.
type ConsentField string

const (
	ConsentTerms        ConsentField = "terms"
	ConsentPersonalData ConsentField = "personal"
)

// ParseConsentField constructs a ConsentField from external input.
func ParseConsentField(s string) (ConsentField, error) {
	f := ConsentField(s)
	if f != ConsentTerms && f != ConsentPersonalData {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid consent field")
	}
	return f, nil
}

// Profile holds the free-text identity fields. No format validation beyond
// non-empty is enforced.
type Profile struct {
	FullName       string `json:"fullName"`
	DateOfBirth    string `json:"dob"`
	Citizenship    string `json:"citizenship"`
	DocumentNumber string `json:"docNumber"`
	Address        string `json:"address"`
}

// Consents holds the two submission consents.
type Consents struct {
	Terms        bool `json:"terms"`
	PersonalData bool `json:"personal"`
}

// Record is the persisted identity document. Attachments are deliberately
// absent: they live only in service memory for the session.
type Record struct {
	Status   Status   `json:"status"`
	Profile  Profile  `json:"profile"`
	Consents Consents `json:"consents"`
}

// DefaultRecord is the documented default substituted for a missing or
// malformed persisted value. Citizenship defaults to RU, mirroring the
// pre-selected value of the original form; it is the one profile field that
// is never empty and therefore not part of the submission check.
func DefaultRecord() Record {
	return Record{
		Status:  StatusGuest,
		Profile: Profile{Citizenship: "RU"},
	}
}

// Attachment is transient metadata about an uploaded file. Binary content is
// never retained.
type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}
