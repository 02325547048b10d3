package models

// Principal is the verified identity behind a request. It is built by the auth
// middleware from the ID token and never persisted. Admin status is not part of
// the token; it is looked up per decision by core.Policy.
type Principal struct {
	SubjectID string                 `json:"uid"`
	Email     string                 `json:"email"`
	Name      string                 `json:"name,omitempty"`
	Claims    map[string]interface{} `json:"-"`
}

// Owner holds the ownership anchors of a resource. Older records anchor on
// email, newer ones on the owner's uid, so both are carried.
type Owner struct {
	UserID string
	Email  string
}
