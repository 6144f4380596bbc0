// Package api is the HTTP surface of authgate: the public root and login
// routes and the token-protected profile and data routes.
package api
