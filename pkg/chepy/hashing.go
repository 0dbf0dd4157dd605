package chepy

import (
	"crypto/md5"  //nolint:gosec // md5 is offered as a data transformation, not for security
	"crypto/sha1" //nolint:gosec // same as above
	"crypto/sha256"
	"encoding/hex"
)

// HashMd5 replaces the state with its hex encoded MD5 digest.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) HashMd5() *Chepy {
	sum := md5.Sum(c.state) //nolint:gosec
	return c.set([]byte(hex.EncodeToString(sum[:])))
}

// HashSha1 replaces the state with its hex encoded SHA-1 digest.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) HashSha1() *Chepy {
	sum := sha1.Sum(c.state) //nolint:gosec
	return c.set([]byte(hex.EncodeToString(sum[:])))
}

// HashSha2 replaces the state with its hex encoded SHA-256 digest.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) HashSha2() *Chepy {
	sum := sha256.Sum256(c.state)
	return c.set([]byte(hex.EncodeToString(sum[:])))
}
