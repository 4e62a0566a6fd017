package freelancer

// ResourceOwner is the authenticated user's profile as returned by the
// identity service. It is built fresh on each fetch and never cached.
type ResourceOwner struct {
	raw map[string]interface{}
}

// NewResourceOwner wraps a raw profile mapping. Exposed for callers that
// need to fake profiles in tests.
func NewResourceOwner(raw map[string]interface{}) *ResourceOwner {
	return &ResourceOwner{raw: raw}
}

// ID returns the resource owner's identifier, which Freelancer keys by email
func (o *ResourceOwner) ID() string {
	return o.Email()
}

// Email returns the profile's email address
func (o *ResourceOwner) Email() string {
	email, _ := o.raw["email"].(string)
	return email
}

// Get returns an arbitrary profile field as a string, or "" when absent or
// not a string
func (o *ResourceOwner) Get(field string) string {
	value, _ := o.raw[field].(string)
	return value
}

// Raw returns the full profile mapping
func (o *ResourceOwner) Raw() map[string]interface{} {
	return o.raw
}
