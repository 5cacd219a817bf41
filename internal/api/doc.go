// Package api implements the HTTP REST surface of starship-api.
//
// # Route Auth Modes
//
// Each route declares its requirement at registration time in Routes:
//
//   - Anonymous: health, register, login, catalog reads, AI questions
//   - Authenticated: the protected probe and all favorite operations
//   - Admin role: catalog create, update, delete
//
// An invalid or missing token on a protected route is 401; a valid
// identity without the required role is 403.
//
// # Favorites
//
// Favorite handlers take the owner id from the verified token claims,
// never from the request body or query. Operations on another user's
// favorite return the same 404 as a missing one.
//
// # Errors
//
// Responses use a stable {"error": "..."} envelope. Internal failure
// details are logged, not returned.
package api
