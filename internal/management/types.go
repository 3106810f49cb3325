package management

import "time"

// Sys is the metadata block every Management API entity carries
type Sys struct {
	ID        string     `json:"id" yaml:"id"`
	Type      string     `json:"type,omitempty" yaml:"type,omitempty"`
	Version   int        `json:"version,omitempty" yaml:"version,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Status    *Link      `json:"status,omitempty" yaml:"status,omitempty"`
}

// Link references another entity by ID
type Link struct {
	Sys LinkSys `json:"sys" yaml:"sys"`
}

// LinkSys is the sys block of a link
type LinkSys struct {
	Type     string `json:"type" yaml:"type"`
	LinkType string `json:"linkType" yaml:"linkType"`
	ID       string `json:"id" yaml:"id"`
}

// NewLink creates a link to an entity of linkType
func NewLink(linkType, id string) Link {
	return Link{Sys: LinkSys{Type: "Link", LinkType: linkType, ID: id}}
}

// collection is the paginated envelope of list endpoints
type collection[T any] struct {
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
	Items []T `json:"items"`
}

// User is the authenticated user
type User struct {
	Sys       Sys    `json:"sys" yaml:"sys"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Email     string `json:"email" yaml:"email"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Email != "":
		return u.Email
	}
	return u.Sys.ID
}

// Organization is an organization the user belongs to
type Organization struct {
	Sys  Sys    `json:"sys" yaml:"sys"`
	Name string `json:"name" yaml:"name"`
}

// Space is a top-level content container
type Space struct {
	Sys  Sys    `json:"sys" yaml:"sys"`
	Name string `json:"name" yaml:"name"`
}

// Environment is a named branch of a space
type Environment struct {
	Sys  Sys    `json:"sys" yaml:"sys"`
	Name string `json:"name" yaml:"name"`
}

// StatusID returns the environment's provisioning status, e.g. "ready"
func (e *Environment) StatusID() string {
	if e.Sys.Status == nil {
		return ""
	}
	return e.Sys.Status.Sys.ID
}

// APIKey is a delivery access token
type APIKey struct {
	Sys          Sys    `json:"sys" yaml:"sys"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	AccessToken  string `json:"accessToken" yaml:"accessToken"`
	Environments []Link `json:"environments,omitempty" yaml:"environments,omitempty"`
}

// CreateAPIKeyRequest is the body of an access token creation
type CreateAPIKeyRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Environments []Link `json:"environments,omitempty"`
}

// ContentType describes the structure of entries
type ContentType struct {
	Sys          Sys     `json:"sys" yaml:"sys"`
	Name         string  `json:"name" yaml:"name"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	DisplayField string  `json:"displayField,omitempty" yaml:"displayField,omitempty"`
	Fields       []Field `json:"fields" yaml:"fields"`
}

// Field is a content type field
type Field struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"type" yaml:"type"`
	LinkType  string `json:"linkType,omitempty" yaml:"linkType,omitempty"`
	Required  bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Localized bool   `json:"localized,omitempty" yaml:"localized,omitempty"`
	Disabled  bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Omitted   bool   `json:"omitted,omitempty" yaml:"omitted,omitempty"`

	Items *FieldItems `json:"items,omitempty" yaml:"items,omitempty"`
}

// FieldItems describes the elements of an Array field
type FieldItems struct {
	Type     string `json:"type" yaml:"type"`
	LinkType string `json:"linkType,omitempty" yaml:"linkType,omitempty"`
}

// contentTypeBody is the writable part of a content type
type contentTypeBody struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	DisplayField string  `json:"displayField,omitempty"`
	Fields       []Field `json:"fields"`
}
