package enums

import "fmt"

// LoginMethod records how an identity was established.
type LoginMethod string

const (
	LoginMethodEmail    LoginMethod = "email"
	LoginMethodGoogle   LoginMethod = "google"
	LoginMethodFacebook LoginMethod = "facebook"
)

var validLoginMethods = []LoginMethod{
	LoginMethodEmail,
	LoginMethodGoogle,
	LoginMethodFacebook,
}

// IsValid reports whether the value is a known LoginMethod.
func (m LoginMethod) IsValid() bool {
	for _, candidate := range validLoginMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsDelegated reports whether the method relies on an external identity provider.
func (m LoginMethod) IsDelegated() bool {
	return m == LoginMethodGoogle || m == LoginMethodFacebook
}

// ParseLoginMethod converts the raw string to LoginMethod.
func ParseLoginMethod(value string) (LoginMethod, error) {
	for _, candidate := range validLoginMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid login method %q", value)
}
