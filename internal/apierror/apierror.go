// Package apierror defines the canonical error classification for API
// responses. Each Kind maps to a fixed {title, code, link} description,
// resolved when the error payload is built.
package apierror

// Kind enumerates the error classifications the API can return.
type Kind int

const (
	Forbidden Kind = iota
	Unauthenticated
	Validation
	Internal
)

// Description is the canonical presentation of an error kind.
type Description struct {
	Title string
	Code  int
	Link  string
}

const docsBase = "https://docs.authgate.dev/errors/"

// Description returns the canonical description for the kind.
func (k Kind) Description() Description {
	switch k {
	case Forbidden:
		return Description{Title: "Forbidden", Code: 4030, Link: docsBase + "forbidden"}
	case Unauthenticated:
		return Description{Title: "Unauthenticated", Code: 4010, Link: docsBase + "unauthenticated"}
	case Validation:
		return Description{Title: "Validation Failed", Code: 4220, Link: docsBase + "validation"}
	default:
		return Description{Title: "Internal Server Error", Code: 5000, Link: docsBase + "internal"}
	}
}

// Payload is the wire shape of an API error.
type Payload struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
	Code     int    `json:"code"`
	Link     string `json:"link"`
}

// New builds an error payload for the kind with the given detail and
// request instance path.
func New(kind Kind, detail, instance string) Payload {
	desc := kind.Description()
	return Payload{
		Title:    desc.Title,
		Detail:   detail,
		Instance: instance,
		Code:     desc.Code,
		Link:     desc.Link,
	}
}
