// Package fingerprint derives a stable content identity for job listings.
//
// Two listings with the same company, title, description, and employment type
// are the same job, no matter which feed they arrived on, what external ID
// they carry, or where they are located. The fingerprint deliberately
// excludes identifiers, locations, URLs, and timestamps.
package fingerprint

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/openroles/jobfeed/internal/domain"
)

// canonical holds exactly the four uniqueness fields. Struct field order is
// the lexicographic order of the JSON keys, so encoding/json emits a sorted,
// stable serialization.
type canonical struct {
	CompanyName    *string `json:"company_name"`
	Description    *string `json:"description"`
	EmploymentType *string `json:"employment_type"`
	Title          *string `json:"title"`
}

// Fingerprint computes the canonical content hash for a job: the four
// uniqueness fields serialized with sorted keys, ASCII-escaped non-ASCII
// runes, and no incidental whitespace, SHA-256 digested, base64 encoded. The
// output is byte-identical across runs, processes, and any producer emitting
// the same canonical serialization, so stores populated by other systems
// dedup correctly against this one.
func Fingerprint(job domain.Job) string {
	c := canonical{
		CompanyName:    fieldString(job, "company_name"),
		Description:    fieldString(job, "description"),
		EmploymentType: fieldString(job, "employment_type"),
		Title:          fieldString(job, "title"),
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encode cannot fail for a struct of string pointers.
	_ = enc.Encode(&c)

	// Encoder appends a trailing newline; the digest input must not include it.
	payload := asciiEscape(bytes.TrimRight(buf.Bytes(), "\n"))

	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// asciiEscape rewrites every rune above 0x7F as a \uXXXX escape, lowercase
// hex, with UTF-16 surrogate pairs above the BMP. The canonical serialization
// is pure ASCII so the digest input does not depend on the producer's native
// string encoding.
func asciiEscape(payload []byte) []byte {
	ascii := true
	for _, b := range payload {
		if b >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return payload
	}

	var out bytes.Buffer
	out.Grow(len(payload))
	for _, r := range string(payload) {
		switch {
		case r < utf8.RuneSelf:
			out.WriteByte(byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, `\u%04x\u%04x`, hi, lo)
		default:
			fmt.Fprintf(&out, `\u%04x`, r)
		}
	}
	return out.Bytes()
}

// fieldString extracts a string field, mapping absent or non-string values to
// null so superficial differences outside the four fields cannot leak in.
func fieldString(job domain.Job, key string) *string {
	if s, ok := job[key].(string); ok {
		return &s
	}
	return nil
}
