package credstore

// Identity is the user record returned by the login endpoint.
type Identity struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// DisplayName prefers the full name and falls back to the username.
func (i Identity) DisplayName() string {
	switch {
	case i.FirstName != "" && i.LastName != "":
		return i.FirstName + " " + i.LastName
	case i.FirstName != "":
		return i.FirstName
	default:
		return i.Username
	}
}

// Credentials is the token pair plus the identity it belongs to. Access and
// Refresh are either both set or both empty.
type Credentials struct {
	Access   string
	Refresh  string
	Identity *Identity
}

// Authenticated reports whether an access token is held. Route guards use
// this and nothing else.
func (c Credentials) Authenticated() bool {
	return c.Access != ""
}

// IsZero reports whether nothing at all is stored.
func (c Credentials) IsZero() bool {
	return c.Access == "" && c.Refresh == "" && c.Identity == nil
}

func (c Credentials) valid() bool {
	return (c.Access == "") == (c.Refresh == "")
}

func (c Credentials) clone() Credentials {
	if c.Identity != nil {
		id := *c.Identity
		c.Identity = &id
	}
	return c
}
