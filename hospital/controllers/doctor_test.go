package controllers

import (
	"context"
	"testing"

	"hospital/hospital/utils/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSlots_UnionWithoutDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com", "2030-01-02 09:00")

	got, err := f.doctors.AddSlots(ctx, doc.UserID, []string{"2030-01-01 09:00", "2030-01-02 09:00", "2030-01-01 09:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-01-01 09:00", "2030-01-02 09:00"}, got)

	// adding the same slots again changes nothing
	again, err := f.doctors.AddSlots(ctx, doc.UserID, []string{"2030-01-01 09:00"})
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestAddSlots_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com")

	_, err := f.doctors.AddSlots(ctx, doc.UserID, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.doctors.AddSlots(ctx, doc.UserID, []string{"2030-01-01 09:00", "  "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.doctors.AddSlots(ctx, 999, []string{"2030-01-01 09:00"})
	assert.ErrorIs(t, err, ErrNotFound)

	slots, err := f.doctors.GetDoctor(ctx, doc.UserID)
	require.NoError(t, err)
	assert.Empty(t, slots.AvailableSlots)
}

func TestRemoveSlots_AbsentIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com", "A", "B")

	got, err := f.doctors.RemoveSlots(ctx, doc.UserID, []string{"Z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	got, err = f.doctors.RemoveSlots(ctx, doc.UserID, []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got)

	got, err = f.doctors.RemoveSlots(ctx, doc.UserID, []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, got)

	_, err = f.doctors.RemoveSlots(ctx, 999, []string{"A"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSlots_AddThenRemoveRestoresOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com", "2030-01-01 09:00")

	got, err := f.doctors.AddSlots(ctx, doc.UserID, []string{"2030-01-02 09:00", "2030-01-03 09:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-01-01 09:00", "2030-01-02 09:00", "2030-01-03 09:00"}, got)

	got, err = f.doctors.RemoveSlots(ctx, doc.UserID, []string{"2030-01-02 09:00", "2030-01-03 09:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-01-01 09:00"}, got)
}

func TestSlots_StoredVerbatim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com")

	got, err := f.doctors.AddSlots(ctx, doc.UserID, []string{" 09:00", "09:00", "09:00 "})
	require.NoError(t, err)
	assert.Equal(t, []string{" 09:00", "09:00", "09:00 "}, got)

	got, err = f.doctors.RemoveSlots(ctx, doc.UserID, []string{" 09:00"})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:00 "}, got)

	_, err = f.doctors.RemoveSlots(ctx, doc.UserID, []string{"\t"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile_Partial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com")

	about := "ENT specialist"
	view, err := f.doctors.UpdateProfile(ctx, doc.UserID, types.UpdateProfileRequest{About: &about})
	require.NoError(t, err)
	assert.Equal(t, "ENT specialist", view.About)
	assert.Equal(t, "", view.WorkExperience)

	exp := "10 years"
	view, err = f.doctors.UpdateProfile(ctx, doc.UserID, types.UpdateProfileRequest{WorkExperience: &exp})
	require.NoError(t, err)
	assert.Equal(t, "ENT specialist", view.About)
	assert.Equal(t, "10 years", view.WorkExperience)
}

func TestDoctorConsultations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc := f.doctor(t, "a@example.com", "A")
	pat := f.patient(t, "p@example.com")
	booked := f.book(t, doc, pat, "A")

	list, err := f.doctors.ListConsultations(ctx, doc.UserID)
	require.NoError(t, err)
	assert.Equal(t, "Dr a@example.com", list.DoctorName)
	require.Len(t, list.Consultations, 1)
	require.NotNil(t, list.Consultations[0].Patient)
	assert.Equal(t, "p@example.com", list.Consultations[0].Patient.Email)

	other := f.doctor(t, "b@example.com")
	_, err = f.doctors.GetConsultation(ctx, other.UserID, booked.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
