// Package auth implements username/password login and the identity carried
// by access tokens.
//
// Subpackages:
//
//   - auth/credential: the fixed set of accounts
//   - auth/password:   bcrypt and argon2id hashing
//   - auth/jwt:        HMAC token issuing and verification
//   - auth/authctx:    claims on the request context
//
// Config composes the subpackage configs:
//
//	auth:
//	  jwt:
//	    secret: "change-me"
//	    access_token_ttl: "24h"
//	  password:
//	    algorithm: "bcrypt"
//	  users:
//	    - id: 1
//	      username: admin
//	      password: admin123
package auth
