// Package users is the gateway to the remote users resource.
//
// The remote is any jsonplaceholder-compatible REST service exposing:
//
//	GET    /users        list every user
//	GET    /users/{id}   fetch one user
//	DELETE /users/{id}   remove one user
//
// Each Client call is a single request with no retries and no caching.
// Any 2xx status is success. Failures are returned as *Error, classified
// by Kind (network, not found, rejected, decode) and, for transport
// failures, by NetworkSubtype:
//
//	u, err := client.GetUser(ctx, 42)
//	if users.IsNotFound(err) {
//	    // render the not-found state
//	}
//
// The package also carries the User model and the text renderings used by
// the CLI (Summary, FormatDetailed, FormatTable).
package users
