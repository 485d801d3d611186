package model

type PatientProfile struct {
	ID      int64    `json:"id"`
	User    UserInfo `json:"user"`
	Age     *int     `json:"age"`
	Contact string   `json:"contact"`
}

type UpdatePatientProfileRequest struct {
	Age     *int       `json:"age" validate:"omitempty,min=0,max=150"`
	Contact string     `json:"contact"`
	User    UserUpdate `json:"user"`
}
