// hospital/controllers/auth.go
package controllers

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"hospital/hospital/config"
	"hospital/hospital/middlewares"
	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/psql/models"
	"hospital/hospital/utils/types"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	doctorDAO  *dao.DoctorDAO
	patientDAO *dao.PatientDAO
	cfg        config.Config
}

func NewAuthController(doctorDAO *dao.DoctorDAO, patientDAO *dao.PatientDAO, cfg config.Config) *AuthController {
	return &AuthController{
		doctorDAO:  doctorDAO,
		patientDAO: patientDAO,
		cfg:        cfg,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", validationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", validationError("email is invalid")
	}
	return email, nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 6 {
		return "", validationError("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", validationError("password is invalid")
	}
	return string(hash), nil
}

func (c *AuthController) RegisterDoctor(ctx context.Context, req types.RegisterDoctorRequest) (*models.Doctor, error) {
	name := strings.TrimSpace(req.Name)
	specialization := strings.TrimSpace(req.Specialization)
	if name == "" || specialization == "" {
		return nil, validationError("name and specialization are required")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	slots, err := cleanSlots(req.AvailableSlots, true)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	existing, err := c.doctorDAO.GetDoctorByEmail(ctx, email)
	if err != nil {
		return nil, storageError("lookup doctor", err)
	}
	if existing != nil {
		return nil, conflict("email is already registered")
	}

	doctor := &models.Doctor{
		Name:           name,
		Email:          email,
		PasswordHash:   hash,
		Specialization: specialization,
		WorkExperience: strings.TrimSpace(req.WorkExperience),
		About:          strings.TrimSpace(req.About),
	}
	for _, s := range slots {
		doctor.Slots = append(doctor.Slots, models.DoctorSlot{Slot: s})
	}
	if err := c.doctorDAO.CreateDoctor(ctx, doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("email is already registered")
		}
		return nil, storageError("create doctor", err)
	}
	return doctor, nil
}

func (c *AuthController) RegisterPatient(ctx context.Context, req types.RegisterPatientRequest) (*models.Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, validationError("name is required")
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	existing, err := c.patientDAO.GetPatientByEmail(ctx, email)
	if err != nil {
		return nil, storageError("lookup patient", err)
	}
	if existing != nil {
		return nil, conflict("email is already registered")
	}

	patient := &models.Patient{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(req.Phone),
	}
	if err := c.patientDAO.CreatePatient(ctx, patient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("email is already registered")
		}
		return nil, storageError("create patient", err)
	}
	return patient, nil
}

// Login checks doctors first, then patients, and returns a signed token.
func (c *AuthController) Login(ctx context.Context, req types.LoginRequest) (*types.LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, validationError("password is required")
	}

	var principal types.Principal
	doctor, err := c.doctorDAO.GetDoctorByEmail(ctx, email)
	if err != nil {
		return nil, storageError("lookup doctor", err)
	}
	if doctor != nil && bcrypt.CompareHashAndPassword([]byte(doctor.PasswordHash), []byte(req.Password)) == nil {
		principal = types.Principal{UserID: doctor.ID, Role: types.RoleDoctor}
	} else {
		patient, err := c.patientDAO.GetPatientByEmail(ctx, email)
		if err != nil {
			return nil, storageError("lookup patient", err)
		}
		if patient == nil || bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(req.Password)) != nil {
			return nil, unauthorized("invalid email or password")
		}
		principal = types.Principal{UserID: patient.ID, Role: types.RolePatient}
	}

	token, err := middlewares.IssueToken(c.cfg.JWTSecret, c.cfg.JWTTTL, principal)
	if err != nil {
		return nil, storageError("sign token", err)
	}
	return &types.LoginResponse{Token: token, Role: principal.Role, ID: principal.UserID}, nil
}
