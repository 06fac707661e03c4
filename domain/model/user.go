package model

// User is a platform account created through bulk import.
type User struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	JobTitle   string `json:"job_title,omitempty"`
	IsDev      bool   `json:"is_dev"`
	IsEnvAdmin bool   `json:"is_env_admin"`
	IsExternal bool   `json:"is_external"`
}

// FullName joins first and last name the way the platform displays users.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
