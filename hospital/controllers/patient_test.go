package controllers

import (
	"context"
	"testing"

	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookConsultation_ConsumesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "d@example.com", "A", "B")
	pat := f.patient(t, "p@example.com")

	c, err := f.patients.BookConsultation(ctx, pat.UserID, types.NewConsultation{
		DoctorID: doc.UserID, Slot: "A", Reason: "cough",
	}, []types.UploadedImage{image("xray.png", "image/png", "png-bytes")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, c.Status)
	require.Len(t, c.Images, 1)
	assert.Contains(t, c.Images[0].URL, "https://minio.test/")
	assert.Equal(t, 1, f.images.count())

	view, err := f.doctors.GetDoctor(ctx, doc.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, view.AvailableSlots)

	other := f.patient(t, "q@example.com")
	_, err = f.patients.BookConsultation(ctx, other.UserID, types.NewConsultation{
		DoctorID: doc.UserID, Slot: "A", Reason: "cough",
	}, nil)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBookConsultation_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "d@example.com", "A")
	pat := f.patient(t, "p@example.com")
	ok := types.NewConsultation{DoctorID: doc.UserID, Slot: "A", Reason: "cough"}

	cases := map[string]struct {
		req    types.NewConsultation
		images []types.UploadedImage
		kind   error
	}{
		"no reason":      {types.NewConsultation{DoctorID: doc.UserID, Slot: "A"}, nil, ErrValidation},
		"no slot":        {types.NewConsultation{DoctorID: doc.UserID, Reason: "x"}, nil, ErrValidation},
		"unknown doctor": {types.NewConsultation{DoctorID: 999, Slot: "A", Reason: "x"}, nil, ErrNotFound},
		"not an image":   {ok, []types.UploadedImage{image("a.pdf", "application/pdf", "x")}, ErrValidation},
		"too large":      {ok, []types.UploadedImage{image("a.png", "image/png", string(make([]byte, 2048)))}, ErrValidation},
		"too many": {ok, []types.UploadedImage{
			image("a.png", "image/png", "1"), image("b.png", "image/png", "2"), image("c.png", "image/png", "3"),
		}, ErrValidation},
		"slot unavailable": {types.NewConsultation{DoctorID: doc.UserID, Slot: "Z", Reason: "x"}, nil, ErrConflict},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.patients.BookConsultation(ctx, pat.UserID, tc.req, tc.images)
			assert.ErrorIs(t, err, tc.kind)
		})
	}
	assert.Equal(t, 0, f.images.count())
}

func TestBookConsultation_UploadFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "d@example.com", "A")
	pat := f.patient(t, "p@example.com")
	f.images.failPut = true

	_, err := f.patients.BookConsultation(ctx, pat.UserID, types.NewConsultation{
		DoctorID: doc.UserID, Slot: "A", Reason: "cough",
	}, []types.UploadedImage{image("a.png", "image/png", "1")})
	assert.ErrorIs(t, err, ErrStorage)

	view, err := f.doctors.GetDoctor(ctx, doc.UserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, view.AvailableSlots)
}

func TestPatientConsultations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "d@example.com", "A")
	pat := f.patient(t, "p@example.com")
	booked := f.book(t, doc, pat, "A")

	list, err := f.patients.ListConsultations(ctx, pat.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Doctor)
	assert.Equal(t, "d@example.com", list[0].Doctor.Email)

	got, err := f.patients.GetConsultation(ctx, pat.UserID, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, booked.ID, got.ID)

	stranger := f.patient(t, "s@example.com")
	_, err = f.patients.GetConsultation(ctx, stranger.UserID, booked.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
