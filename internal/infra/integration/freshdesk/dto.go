package freshdesk

import "github.com/xavierca1/contactsync/internal/entity"

// createContactRequest is the body of POST /api/v2/contacts.
type createContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// updateContactRequest is the body of PUT /api/v2/contacts/{id}.
type updateContactRequest struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// contactResponse is the subset of a Freshdesk contact we read. Freshdesk sends
// many more fields (phone, company_id, custom_fields...).
type contactResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r contactResponse) toEntity() (*entity.Contact, error) {
	c := &entity.Contact{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
