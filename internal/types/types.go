package types

// Header and claim keys shared across middleware and handlers.
const (
	HeaderAuthorization = "Authorization"
	BearerPrefix        = "Bearer "
	HeaderUID           = "uid"

	// AdminCtxName is the fiber locals key holding the authenticated admin.
	AdminCtxName = "admin"

	// ClaimKey is the JWT claim that carries the admin envelope.
	ClaimKey = "claim"
)

// AdminContext is the authenticated administrator attached to each request.
type AdminContext struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
}
