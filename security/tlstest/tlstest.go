// Package tlstest issues a throwaway CA and a localhost certificate for
// the HTTPS and mutual TLS tests.
package tlstest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Certs points at PEM files under t.TempDir(). The leaf certificate is
// valid for localhost as both server and client.
type Certs struct {
	CAFile   string
	CertFile string
	KeyFile  string

	// Pool trusts the CA.
	Pool *x509.CertPool
	// Client is the leaf pair, for presenting as a client certificate.
	Client tls.Certificate
}

type keyPair struct {
	cert *x509.Certificate
	der  []byte
	key  *ecdsa.PrivateKey
}

// New issues a CA and a leaf signed by it.
func New(t testing.TB) *Certs {
	t.Helper()
	dir := t.TempDir()
	now := time.Now()

	ca := issue(t, &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "authgate test CA"},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}, nil)

	leaf := issue(t, &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "localhost"},
		DNSNames:     []string{"localhost"},
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		NotBefore:    now.Add(-time.Hour),
		NotAfter:     now.Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
	}, ca)

	keyDER, err := x509.MarshalECPrivateKey(leaf.key)
	if err != nil {
		t.Fatalf("tlstest: marshal key: %v", err)
	}

	c := &Certs{
		CAFile:   write(t, dir, "ca.pem", "CERTIFICATE", ca.der),
		CertFile: write(t, dir, "cert.pem", "CERTIFICATE", leaf.der),
		KeyFile:  write(t, dir, "key.pem", "EC PRIVATE KEY", keyDER),
		Pool:     x509.NewCertPool(),
		Client:   tls.Certificate{Certificate: [][]byte{leaf.der}, PrivateKey: leaf.key, Leaf: leaf.cert},
	}
	c.Pool.AddCert(ca.cert)
	return c
}

// issue signs tmpl with parent's key, or self-signs when parent is nil.
func issue(t testing.TB, tmpl *x509.Certificate, parent *keyPair) *keyPair {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("tlstest: generate key: %v", err)
	}
	signer, signerKey := tmpl, key
	if parent != nil {
		signer, signerKey = parent.cert, parent.key
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, signer, &key.PublicKey, signerKey)
	if err != nil {
		t.Fatalf("tlstest: sign %s: %v", tmpl.Subject.CommonName, err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("tlstest: parse %s: %v", tmpl.Subject.CommonName, err)
	}
	return &keyPair{cert: cert, der: der, key: key}
}

func write(t testing.TB, dir, name, blockType string, der []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}), 0o600); err != nil {
		t.Fatalf("tlstest: write %s: %v", name, err)
	}
	return path
}

// BadPEM writes a PEM-framed file whose body is not a certificate.
func BadPEM(t testing.TB, name string) string {
	t.Helper()
	return write(t, t.TempDir(), name, "CERTIFICATE", []byte("not a certificate"))
}
