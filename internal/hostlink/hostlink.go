// Package hostlink canonicalizes the host portion of an SVG link
// attribute (href, xlink:href) so that two links differing only in
// case, trailing dot, or Unicode/punycode form fold to the same
// fingerprint contribution under the same_link_host matching rule.
package hostlink

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// linkHostProfile is a lenient IDNA profile: unlike a domain
// registration validator, link hosts in the wild include IP
// addresses, non-ICANN TLDs and ports, so canonicalization only maps
// and lowercases, it never rejects.
var linkHostProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
)

// CanonicalHost extracts and canonicalizes the host of href. ok is
// false when href carries no host at all: a bare fragment ("#id"), a
// relative path, a data: URI, or a malformed URL. Callers should fall
// back to hashing the raw attribute text in that case, so that such
// links still contribute a stable (if less forgiving) fingerprint.
func CanonicalHost(href string) (host string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	h := u.Hostname()
	if h == "" {
		return "", false
	}

	canonical, err := linkHostProfile.ToUnicode(h)
	if err != nil {
		// Not valid IDNA (e.g. a bare IP literal or an already-invalid
		// host); fall back to a simple lowercase fold rather than
		// rejecting outright, since the goal here is a stable
		// fingerprint, not strict validation.
		return strings.ToLower(h), true
	}
	return canonical, true
}
