package entity

import "errors"

// DirectoryUser is the person record fetched from the source directory (GitHub).
type DirectoryUser struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewDirectoryUser builds a user and rejects records without a name or email,
// since the contact store is keyed by email and requires a name.
func NewDirectoryUser(login, name, email string) (*DirectoryUser, error) {
	u := &DirectoryUser{
		Login: login,
		Name:  name,
		Email: email,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *DirectoryUser) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	return nil
}
