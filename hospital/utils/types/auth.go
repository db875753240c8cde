// hospital/utils/types/auth.go
package types

const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// Principal is the authenticated caller, taken from a verified JWT.
type Principal struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func (p Principal) IsDoctor() bool  { return p.Role == RoleDoctor }
func (p Principal) IsPatient() bool { return p.Role == RolePatient }

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	ID    uint   `json:"id"`
}

type RegisterDoctorRequest struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Password       string   `json:"password"`
	Specialization string   `json:"specialization"`
	WorkExperience string   `json:"workExperience,omitempty"`
	About          string   `json:"about,omitempty"`
	AvailableSlots []string `json:"availableSlots,omitempty"`
}

type RegisterPatientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}
