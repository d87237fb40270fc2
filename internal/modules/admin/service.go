package admin

import (
	"crypto/subtle"

	"floorcare/internal/pkg/apperror"
)

// SessionService issues an admin-role token for the hardcoded operator
// credential pair. It is independent of the user store: no record is
// created; it exists only to bootstrap the admin panel login.
type SessionService struct {
	operatorEmail    string
	operatorPassword string
	jwt              jwtService
}

func NewSessionService(operatorEmail, operatorPassword string, jwt jwtService) *SessionService {
	return &SessionService{
		operatorEmail:    operatorEmail,
		operatorPassword: operatorPassword,
		jwt:              jwt,
	}
}

func (s *SessionService) Login(email, password string) (string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.operatorEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.operatorPassword)) == 1
	if !emailOK || !passOK {
		return "", apperror.Unauthorizedf("Invalid email or password")
	}

	// subject id 0: the operator has no user record
	return s.jwt.GenerateToken(0, s.operatorEmail, "admin")
}
