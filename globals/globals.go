package globals

import (
	"context"
)

// JwtSecret is set from the JWT_SECRET environment variable in main.
var JwtSecret []byte

// Context keys
type ContextKey string

const AdminIDKey ContextKey = "adminId"

var Ctx = context.Background()
