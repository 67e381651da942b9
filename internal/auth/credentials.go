package auth

import "crypto/subtle"

// Credentials is the single configured login.
type Credentials struct {
	Login    string
	Password string
}

// CheckCredentials reports whether login and password match want. An empty
// configured login never matches.
func CheckCredentials(login, password string, want Credentials) bool {
	if want.Login == "" {
		return false
	}

	loginOK := subtle.ConstantTimeCompare([]byte(login), []byte(want.Login)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(want.Password)) == 1

	return loginOK && passwordOK
}
