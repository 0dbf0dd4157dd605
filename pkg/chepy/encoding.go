package chepy

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ToHex converts the state to its hexadecimal representation.
//
// Args:
//   - delimiter (string, optional): separator placed between bytes. Defaults to "".
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) ToHex(delimiter string) *Chepy {
	if delimiter == "" {
		return c.set([]byte(hex.EncodeToString(c.state)))
	}
	parts := make([]string, len(c.state))
	for i, b := range c.state {
		parts[i] = hex.EncodeToString([]byte{b})
	}
	return c.set([]byte(strings.Join(parts, delimiter)))
}

// FromHex decodes a hexadecimal state.
//
// Args:
//   - delimiter (string, optional): separator between bytes to remove first. Defaults to "".
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) FromHex(delimiter string) (*Chepy, error) {
	src := string(c.state)
	if delimiter != "" {
		src = strings.ReplaceAll(src, delimiter, "")
	}
	src = strings.Join(strings.Fields(src), "")
	decoded, err := hex.DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return c.set(decoded), nil
}

// ToBase64 encodes the state as base64.
//
// Args:
//   - url_safe (bool, optional): use the URL safe alphabet. Defaults to false.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) ToBase64(urlSafe bool) *Chepy {
	enc := base64.StdEncoding
	if urlSafe {
		enc = base64.URLEncoding
	}
	return c.set([]byte(enc.EncodeToString(c.state)))
}

// FromBase64 decodes a base64 state.
//
// Args:
//   - url_safe (bool, optional): the state uses the URL safe alphabet. Defaults to false.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) FromBase64(urlSafe bool) (*Chepy, error) {
	enc := base64.StdEncoding
	if urlSafe {
		enc = base64.URLEncoding
	}
	decoded, err := enc.DecodeString(strings.TrimSpace(string(c.state)))
	if err != nil {
		return nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return c.set(decoded), nil
}

// ToBinary converts every byte of the state to its 8 bit binary form.
//
// Args:
//   - delimiter (string, optional): separator placed between bytes. Defaults to " ".
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) ToBinary(delimiter string) *Chepy {
	parts := make([]string, len(c.state))
	for i, b := range c.state {
		parts[i] = fmt.Sprintf("%08b", b)
	}
	return c.set([]byte(strings.Join(parts, delimiter)))
}

// FromBinary decodes whitespace separated 8 bit binary groups.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) FromBinary() (*Chepy, error) {
	fields := strings.Fields(string(c.state))
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 2, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid binary group %q: %w", f, err)
		}
		out = append(out, byte(v))
	}
	return c.set(out), nil
}

// ToDecimal converts every byte of the state to its decimal value.
//
// Args:
//   - delimiter (string, optional): separator placed between values. Defaults to " ".
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) ToDecimal(delimiter string) *Chepy {
	parts := make([]string, len(c.state))
	for i, b := range c.state {
		parts[i] = strconv.Itoa(int(b))
	}
	return c.set([]byte(strings.Join(parts, delimiter)))
}

// FromDecimal decodes decimal byte values.
//
// Args:
//   - delimiter (string, optional): separator between values. Defaults to " ".
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) FromDecimal(delimiter string) (*Chepy, error) {
	var fields []string
	if strings.TrimSpace(delimiter) == "" {
		fields = strings.Fields(string(c.state))
	} else {
		fields = strings.Split(string(c.state), delimiter)
	}
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid decimal value %q: %w", f, err)
		}
		out = append(out, byte(v))
	}
	return c.set(out), nil
}

// URLEncode percent-encodes the state for use in a query string.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) URLEncode() *Chepy {
	return c.set([]byte(url.QueryEscape(string(c.state))))
}

// URLDecode decodes a percent-encoded state.
//
// Returns:
//   - Chepy: the Chepy object.
func (c *Chepy) URLDecode() (*Chepy, error) {
	decoded, err := url.QueryUnescape(string(c.state))
	if err != nil {
		return nil, fmt.Errorf("invalid url encoded data: %w", err)
	}
	return c.set([]byte(decoded)), nil
}
