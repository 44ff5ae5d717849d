package importrow

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/youth-league/internal/domain/volunteer"
)

// Columns tagged "column" must exist in the header line for the file to be
// accepted at all.

type PlayerRow struct {
	FirstName              string `csv:"first_name,column" validate:"required,max=80"`
	LastName               string `csv:"last_name,column" validate:"required,max=80"`
	BirthDate              string `csv:"birth_date,column" validate:"required,datetime=2006-01-02"`
	Gender                 string `csv:"gender" validate:"max=16"`
	Division               string `csv:"division,column" validate:"required"`
	FamilyID               string `csv:"family_id"`
	Status                 string `csv:"status" validate:"omitempty,oneof=active withdrawn inactive"`
	PrimaryGuardianName    string `csv:"primary_guardian_name" validate:"max=120"`
	PrimaryGuardianEmail   string `csv:"primary_guardian_email" validate:"omitempty,email"`
	PrimaryGuardianPhone   string `csv:"primary_guardian_phone" validate:"max=40"`
	SecondaryGuardianName  string `csv:"secondary_guardian_name" validate:"max=120"`
	SecondaryGuardianEmail string `csv:"secondary_guardian_email" validate:"omitempty,email"`
	SecondaryGuardianPhone string `csv:"secondary_guardian_phone" validate:"max=40"`
	IsNewPlayer            *bool  `csv:"is_new_player"`
	IsTravelPlayer         *bool  `csv:"is_travel_player"`
	PaymentReceived        *bool  `csv:"payment_received"`
	MedicalNotes           string `csv:"medical_notes" validate:"max=500"`
}

type VolunteerRow struct {
	Name                  string `csv:"name,column" validate:"required,max=120"`
	Email                 string `csv:"email,column" validate:"required,email"`
	Phone                 string `csv:"phone" validate:"max=40"`
	Role                  string `csv:"role" validate:"omitempty,volunteer_role"`
	InterestedRoles       string `csv:"interested_roles" validate:"max=500"`
	Division              string `csv:"division"`
	FamilyID              string `csv:"family_id"`
	PrimaryGuardianEmail  string `csv:"primary_guardian_email" validate:"omitempty,email"`
	TrainingCompleted     *bool  `csv:"training_completed"`
	BackgroundCheckStatus string `csv:"background_check_status" validate:"omitempty,oneof=pending cleared expired"`
}

type FamilyRow struct {
	PrimaryGuardianName    string `csv:"primary_guardian_name,column" validate:"required,max=120"`
	PrimaryGuardianEmail   string `csv:"primary_guardian_email,column" validate:"required,email"`
	PrimaryGuardianPhone   string `csv:"primary_guardian_phone" validate:"max=40"`
	SecondaryGuardianName  string `csv:"secondary_guardian_name" validate:"max=120"`
	SecondaryGuardianEmail string `csv:"secondary_guardian_email" validate:"omitempty,email"`
	SecondaryGuardianPhone string `csv:"secondary_guardian_phone" validate:"max=40"`
	Address                string `csv:"address" validate:"max=240"`
	WorkbondExempt         *bool  `csv:"workbond_exempt"`
	WorkbondNote           string `csv:"workbond_note" validate:"max=240"`
}

type ShiftRow struct {
	ShiftName string  `csv:"shift_name,column" validate:"required,max=120"`
	Location  string  `csv:"location" validate:"max=120"`
	StartsAt  string  `csv:"starts_at,column" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndsAt    string  `csv:"ends_at,column" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Hours     float64 `csv:"hours,column" validate:"gt=0"`
	Capacity  int     `csv:"capacity,column" validate:"min=1"`
}

// Times parses StartsAt and EndsAt; both were validated by Bind.
func (r ShiftRow) Times() (time.Time, time.Time) {
	start, _ := time.Parse(time.RFC3339, r.StartsAt)
	end, _ := time.Parse(time.RFC3339, r.EndsAt)
	return start, end
}

// FamilyEmail is the guardian email the row links to a family by.
func (r VolunteerRow) FamilyEmail() string {
	if e := strings.TrimSpace(r.PrimaryGuardianEmail); e != "" {
		return e
	}
	return r.Email
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("volunteer_role", func(fl validator.FieldLevel) bool {
		_, ok := volunteer.CanonicalRole(fl.Field().String())
		return ok
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		row := sl.Current().Interface().(PlayerRow)
		if row.FamilyID != "" {
			return
		}
		if strings.TrimSpace(row.PrimaryGuardianName) == "" {
			sl.ReportError(row.PrimaryGuardianName, "primary_guardian_name", "PrimaryGuardianName", "required_without", "family_id")
		}
		if strings.TrimSpace(row.PrimaryGuardianEmail) == "" {
			sl.ReportError(row.PrimaryGuardianEmail, "primary_guardian_email", "PrimaryGuardianEmail", "required_without", "family_id")
		}
	}, PlayerRow{})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		row := sl.Current().Interface().(ShiftRow)
		start, err1 := time.Parse(time.RFC3339, row.StartsAt)
		end, err2 := time.Parse(time.RFC3339, row.EndsAt)
		if err1 != nil || err2 != nil {
			return
		}
		if !end.After(start) {
			sl.ReportError(row.EndsAt, "ends_at", "EndsAt", "gtfield", "starts_at")
		}
	}, ShiftRow{})
}
