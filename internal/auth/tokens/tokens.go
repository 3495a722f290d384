package tokens

import (
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"

	"github.com/skillswap/admin-api/internal/types"
)

// SessionClaims is the envelope carried by admin session tokens.
type SessionClaims struct {
	Name  string                 `json:"name"`
	Claim map[string]interface{} `json:"claim"`
	jwt.RegisteredClaims
}

// CreateSessionToken creates an ES256 signed JWT for an authenticated admin.
// The returned session id (jti) is registered in the session allowlist by
// the caller.
func CreateSessionToken(privateKeyPEM, keyID string, admin types.AdminContext, ttl time.Duration) (token string, sessionID string, err error) {
	privateKey, keyErr := jwt.ParseECPrivateKeyFromPEM([]byte(privateKeyPEM))
	if keyErr != nil {
		return "", "", keyErr
	}

	sessionID = uuid.Must(uuid.NewV4()).String()
	if ttl <= 0 {
		ttl = 48 * time.Hour
	}

	method := jwt.GetSigningMethod(jwt.SigningMethodES256.Name)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Issuer:    "skillswap-admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   admin.Email,
		},
		Name: admin.Name,
		Claim: map[string]interface{}{
			types.HeaderUID: admin.ID,
			"email":         admin.Email,
			"name":          admin.Name,
			"role":          admin.Role,
		},
	}

	jwtToken := jwt.NewWithClaims(method, claims)
	if keyID == "" {
		keyID = "skillswap-auth-key-1"
	}
	jwtToken.Header["kid"] = keyID

	token, err = jwtToken.SignedString(privateKey)
	return token, sessionID, err
}
