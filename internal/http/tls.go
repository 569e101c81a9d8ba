package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"

	utls "github.com/refraction-networking/utls"
)

// TLSProfile pairs a browser name with its utls ClientHello.
type TLSProfile struct {
	Name     string
	ClientID utls.ClientHelloID
}

var tlsProfiles = map[string]TLSProfile{
	"chrome":  {Name: "Chrome_131", ClientID: utls.HelloChrome_131},
	"firefox": {Name: "Firefox_120", ClientID: utls.HelloFirefox_120},
	"edge":    {Name: "Edge_106", ClientID: utls.HelloEdge_106},
	"safari":  {Name: "Safari_16_0", ClientID: utls.HelloSafari_16_0},
}

// TLSProfileFor returns the ClientHello profile matching a browser
// name, defaulting to Chrome.
func TLSProfileFor(browser string) TLSProfile {
	if p, ok := tlsProfiles[strings.ToLower(browser)]; ok {
		return p
	}
	return tlsProfiles["chrome"]
}

// fingerprintDialer returns a DialTLSContext that performs the
// handshake through utls so the ClientHello matches the header profile.
// HTTP/2 is disabled on the owning transport; the hello advertises
// http/1.1 only, keeping ALPN consistent with what the transport
// actually speaks.
func fingerprintDialer(profile TLSProfile) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		dialer := &net.Dialer{}
		raw, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}

		conn := utls.UClient(raw, &utls.Config{
			ServerName: host,
			NextProtos: []string{"http/1.1"},
		}, profile.ClientID)

		if err := conn.HandshakeContext(ctx); err != nil {
			raw.Close()
			return nil, fmt.Errorf("tls handshake with %s: %w", addr, err)
		}
		return conn, nil
	}
}

// applyFingerprint wires the utls dialer into a transport.
func applyFingerprint(transport *http.Transport, profile TLSProfile) {
	transport.DialTLSContext = fingerprintDialer(profile)
	transport.ForceAttemptHTTP2 = false
}
