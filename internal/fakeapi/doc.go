// Package fakeapi is a local stand-in for the public users service.
//
// It serves the same three routes with the same response shapes:
//
//	GET    /users        200 [ ...users ]
//	GET    /users/:id    200 {user} | 404 {}
//	DELETE /users/:id    200 {}     | 404 {}
//
// Unlike the public service, deletions are applied to the in-memory store,
// so a deleted user is gone from later listings. Options inject failures
// (every DELETE answers 500) and latency for exercising the loading and
// error states of the screens. With Config.Advertise set the server also
// announces itself over mDNS so `userdeck discover` can find it.
package fakeapi
