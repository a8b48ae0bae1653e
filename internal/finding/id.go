package finding

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// digestDomain versions the digest algorithm so it can be migrated later
// without silently colliding with old values.
const digestDomain = "tgacheck/findings/v1"

// Label normalizes an entity name for use inside a finding ID.
//
// Plan text arrives in inconsistent Unicode forms (umlauts may be composed
// or decomposed depending on the extraction path). NFC normalization plus
// whitespace folding makes the resulting IDs stable across runs and across
// extractors. An empty label becomes "unbekannt", matching the fallback the
// rule texts use.
func Label(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		return "unbekannt"
	}
	return strings.Join(strings.Fields(s), " ")
}

// ComposeID builds a deterministic composite ID from its parts, normalizing
// each part via Label. Parts are joined with underscores:
//
//	ComposeID("kg420", "room", "Büro 1", "hoch") == "kg420_room_Büro 1_hoch"
func ComposeID(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = Label(p)
	}
	return strings.Join(normalized, "_")
}

// Digest computes a SHA-256 content digest over the ordered finding ID list.
// Format: SHA256(domain + 0x00 + id + "\n" per finding), hex encoded.
//
// Two runs over identical input must produce identical digests; the audit
// store records the digest per run and the determinism tests compare it.
func Digest(findings []Finding) string {
	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00})
	for _, f := range findings {
		h.Write([]byte(f.ID))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
