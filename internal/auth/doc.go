// Package auth provides authentication and authorization for starship-api.
//
// # Tokens
//
// Sessions are JWT tokens signed with HS256 using the configured key.
// NewTokens refuses keys shorter than 32 bytes. A token carries:
//
//   - sub: the user id (owner for all favorite operations)
//   - email: the account email
//   - roles: the role names held at issuance time
//   - iss, aud, iat, exp: standard claims, validated with zero leeway
//
// Roles are frozen into the token when it is minted. Membership changes
// take effect at the next login, not retroactively.
//
// # Verification
//
// Verify rejects anything that is not a well-formed, correctly signed,
// unexpired HS256 token for the configured issuer and audience. Every
// failure maps to the single ErrUnauthenticated sentinel; the concrete
// cause goes to the debug log only, so callers cannot build an oracle
// out of the error text.
//
// # Middleware
//
// Three route modes:
//
//	auth.Middleware(tokens)    // 401 unless a valid bearer token is present
//	auth.Optional(tokens)      // valid token attaches claims, otherwise anonymous
//	auth.RequireRole("Admin")  // after Middleware; 403 when the role is missing
//
// Verified claims travel on the request context via WithClaims/FromContext.
//
// # Passwords
//
// Passwords are hashed with bcrypt. ValidatePassword enforces the
// registration policy: at least 8 characters with upper, lower, digit,
// and symbol.
package auth
