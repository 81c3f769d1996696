package service

// Catalog resolves user-facing message keys. The default implementation is a
// plain English map; a deployment can swap in a localized one.
type Catalog interface {
	Translate(key string) string
}

const (
	MsgDuplicatedEmail = "http.DUPLICATED"
	MsgRegistrationTrx = "http.ERROR_TRX"
	MsgUserCreated     = "http.SUCCESS_CREATED"
)

type StaticCatalog map[string]string

func DefaultCatalog() StaticCatalog {
	return StaticCatalog{
		MsgDuplicatedEmail: "email already in use",
		MsgRegistrationTrx: "could not complete registration",
		MsgUserCreated:     "user created successfully",
	}
}

func (c StaticCatalog) Translate(key string) string {
	if msg, ok := c[key]; ok {
		return msg
	}
	return key
}
