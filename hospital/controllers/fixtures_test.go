package controllers

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"hospital/hospital/config"
	"hospital/hospital/sources/mail"
	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/sources/psql/testdb"
	"hospital/hospital/utils/types"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeImages struct {
	mu      sync.Mutex
	objects map[string]string
	failPut bool
	next    int
}

func newFakeImages() *fakeImages {
	return &fakeImages{objects: map[string]string{}}
}

func (f *fakeImages) UploadImage(_ context.Context, filename, _ string, r io.Reader, _ int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return "", errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.next++
	key := "consultations/" + filename + "-" + string(rune('a'+f.next))
	f.objects[key] = string(data)
	return key, nil
}

func (f *fakeImages) ImageURL(_ context.Context, key string) (string, error) {
	return "https://minio.test/" + key + "?sig=x", nil
}

func (f *fakeImages) DeleteImage(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeImages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

type fakeNotifier struct {
	notices []mail.StatusNotice
	err     error
}

func (f *fakeNotifier) ConsultationStatusChanged(_ context.Context, n mail.StatusNotice) error {
	f.notices = append(f.notices, n)
	return f.err
}

type fixture struct {
	db            *gorm.DB
	auth          *AuthController
	doctors       *DoctorController
	patients      *PatientController
	consultations *ConsultationController
	chats         *ChatController
	images        *fakeImages
	notifier      *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.Open(t)
	doctorDAO := dao.NewDoctorDAO(db)
	patientDAO := dao.NewPatientDAO(db)
	slotDAO := dao.NewSlotDAO(db)
	consultationDAO := dao.NewConsultationDAO(db)
	images := newFakeImages()
	notifier := &fakeNotifier{}
	cfg := config.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}
	return &fixture{
		db:            db,
		auth:          NewAuthController(doctorDAO, patientDAO, cfg),
		doctors:       NewDoctorController(db, doctorDAO, slotDAO, consultationDAO, images),
		patients:      NewPatientController(db, doctorDAO, slotDAO, consultationDAO, images, 1024, 2),
		consultations: NewConsultationController(db, consultationDAO, slotDAO, notifier),
		chats:         NewChatController(dao.NewChatDAO(db), dao.NewMessageDAO(db), consultationDAO),
		images:        images,
		notifier:      notifier,
	}
}

func (f *fixture) doctor(t *testing.T, email string, slots ...string) types.Principal {
	t.Helper()
	d, err := f.auth.RegisterDoctor(context.Background(), types.RegisterDoctorRequest{
		Name: "Dr " + email, Email: email, Password: "secret123", Specialization: "ENT", AvailableSlots: slots,
	})
	require.NoError(t, err)
	return types.Principal{UserID: d.ID, Role: types.RoleDoctor}
}

func (f *fixture) patient(t *testing.T, email string) types.Principal {
	t.Helper()
	p, err := f.auth.RegisterPatient(context.Background(), types.RegisterPatientRequest{
		Name: "Patient " + email, Email: email, Password: "secret123",
	})
	require.NoError(t, err)
	return types.Principal{UserID: p.ID, Role: types.RolePatient}
}

func (f *fixture) book(t *testing.T, doctor, patient types.Principal, slot string) *models.Consultation {
	t.Helper()
	c, err := f.patients.BookConsultation(context.Background(), patient.UserID, types.NewConsultation{
		DoctorID: doctor.UserID, Slot: slot, Reason: "headache",
	}, nil)
	require.NoError(t, err)
	return c
}

func image(name, contentType, body string) types.UploadedImage {
	return types.UploadedImage{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}
