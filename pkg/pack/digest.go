package pack

import (
	"crypto/sha1"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
)

// Digests returns the two checksums npm records for a tarball: the
// hex SHA-1 "shasum" and the SRI "sha512-..." integrity string.
func Digests(tarball []byte) (shasum, integrity string) {
	s1 := sha1.Sum(tarball)
	s512 := sha512.Sum512(tarball)
	return hex.EncodeToString(s1[:]),
		"sha512-" + base64.StdEncoding.EncodeToString(s512[:])
}
