// hospital/sources/psql/models/models.go
package models

// All returns every model in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&Doctor{},
		&DoctorSlot{},
		&Patient{},
		&Consultation{},
		&ConsultationImage{},
		&Chat{},
		&Message{},
	}
}
