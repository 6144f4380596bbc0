// Package security turns the server.tls section into a *tls.Config.
//
// The listener runs in one of three modes. It is Plain until both a
// certificate and a key are set, Server with them, and Mutual once
// client_ca_file is also set.
//
//	cfg, err := security.TLS{CertFile: "cert.pem", KeyFile: "key.pem"}.ServerConfig()
package security
