package security

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// Mode is how the listener is secured.
type Mode int

const (
	Plain  Mode = iota // cleartext HTTP/1.1 and h2c
	Server             // server certificate only
	Mutual             // server certificate plus verified client certificate
)

func (m Mode) String() string {
	switch m {
	case Server:
		return "tls"
	case Mutual:
		return "mtls"
	default:
		return "plain"
	}
}

var minVersions = map[string]uint16{
	"":    tls.VersionTLS12,
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

// TLS is the server.tls section. Leaving cert_file and key_file empty serves
// cleartext.
type TLS struct {
	CertFile     string `yaml:"cert_file" mapstructure:"cert_file"`
	KeyFile      string `yaml:"key_file" mapstructure:"key_file"`
	ClientCAFile string `yaml:"client_ca_file" mapstructure:"client_ca_file"`

	// MinVersion is "1.2" (default) or "1.3".
	MinVersion string `yaml:"min_version" mapstructure:"min_version"`
}

// Mode reports how the listener will be secured.
func (t TLS) Mode() Mode {
	switch {
	case t.CertFile == "" || t.KeyFile == "":
		return Plain
	case t.ClientCAFile != "":
		return Mutual
	default:
		return Server
	}
}

// Validate reports every inconsistency at once.
func (t TLS) Validate() error {
	var errs []error
	if (t.CertFile == "") != (t.KeyFile == "") {
		errs = append(errs, errors.New("cert_file and key_file must be set together"))
	}
	if t.ClientCAFile != "" && t.CertFile == "" {
		errs = append(errs, errors.New("client_ca_file needs cert_file and key_file"))
	}
	if _, ok := minVersions[t.MinVersion]; !ok {
		errs = append(errs, fmt.Errorf("min_version %q is not one of 1.2, 1.3", t.MinVersion))
	}
	return errors.Join(errs...)
}

// ServerConfig loads the key material. It returns nil in Plain mode.
func (t TLS) ServerConfig() (*tls.Config, error) {
	mode := t.Mode()
	if mode == Plain {
		return nil, nil
	}

	cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("security: load server certificate: %w", err)
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   minVersions[t.MinVersion],
		NextProtos:   []string{"h2", "http/1.1"},
	}
	if mode == Mutual {
		pool, err := loadPool(t.ClientCAFile)
		if err != nil {
			return nil, err
		}
		cfg.ClientCAs = pool
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg, nil
}

func loadPool(path string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("security: read client CA: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("security: no certificates in %s", path)
	}
	return pool, nil
}
