package model

type Specialty struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Doctor is one entry of the patient-facing directory. The API exposes the
// doctor identifier as doctor_id here; that field, never the nested user id,
// is what the availability and booking endpoints key on.
type Doctor struct {
	DoctorID  int64      `json:"doctor_id"`
	User      UserInfo   `json:"user"`
	Specialty *Specialty `json:"specialty"`
	Bio       string     `json:"bio"`
	Contact   string     `json:"contact"`
}

// SpecialtyName returns the display name or an empty string when the doctor
// has no specialty assigned.
func (d *Doctor) SpecialtyName() string {
	if d.Specialty == nil {
		return ""
	}
	return d.Specialty.Name
}

// DoctorProfile is the owner's editable view. Specialty is a bare foreign
// key here, with the resolved name alongside.
type DoctorProfile struct {
	DoctorID      int64    `json:"doctor_id"`
	User          UserInfo `json:"user"`
	Contact       string   `json:"contact"`
	Bio           string   `json:"bio"`
	Specialty     *int64   `json:"specialty"`
	SpecialtyName *string  `json:"specialty_name"`
}

// UserUpdate is the nested user object of a profile PATCH. Password is only
// sent when the caller sets it.
type UserUpdate struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type UpdateDoctorProfileRequest struct {
	Contact   string     `json:"contact"`
	Bio       string     `json:"bio"`
	Specialty *int64     `json:"specialty"`
	User      UserUpdate `json:"user"`
}
