package provider

import (
	"fmt"

	"fortio.org/safecast"

	"xtread/internal/token"
)

// Validate checks a claim against the provider contract for the position off.
// A nil error means the lexer may emit the claimed token as is.
func Validate(src []byte, off uint32, want Want, c Claim) error {
	if !want.Has(c.Kind) {
		return fmt.Errorf("claimed %s, which was not requested here", c.Kind)
	}
	n, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("source too large: %w", err)
	}
	if c.End <= off {
		return fmt.Errorf("claimed an empty or backwards span [%d, %d)", off, c.End)
	}
	if c.End > n {
		return fmt.Errorf("claim end %d is past the end of input %d", c.End, n)
	}
	for i := off; i < c.End; i++ {
		if IsHardDelimiter(src[i]) || (src[i] == ',' && c.Kind == token.TypedName) {
			return fmt.Errorf("claimed %s crosses the delimiter %q at offset %d", c.Kind, src[i], i)
		}
	}
	return nil
}
