// hospital/utils/types/doctor.go
package types

import "io"

type AddSlotsRequest struct {
	NewSlots []string `json:"newSlots"`
}

type RemoveSlotsRequest struct {
	RemovedSlots []string `json:"removedSlots"`
}

type SlotsResponse struct {
	Message        string   `json:"message"`
	AvailableSlots []string `json:"availableSlots"`
}

// UpdateProfileRequest leaves a field untouched when it is nil.
type UpdateProfileRequest struct {
	WorkExperience *string `json:"workExperience"`
	About          *string `json:"about"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// NewConsultation carries the non-file fields of the booking form.
type NewConsultation struct {
	DoctorID    uint
	Slot        string
	Reason      string
	Description string
}

// UploadedImage is one file of the booking form, already size-checked.
type UploadedImage struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}
