package probe

import (
	"fmt"
	"os"
	"strings"
)

// encodedFlagsVar carries the build's compiler flags as fields joined by
// the ASCII unit separator, so flags containing spaces survive intact.
const encodedFlagsVar = "CARGO_ENCODED_RUSTFLAGS"

const unitSeparator = "\x1f"

// EncodedRustflags reads the forwarded compiler flags from the environment.
// An unset variable is an error: probing without the real build's flags
// could disagree with the real build about what compiles. An empty value
// means "no flags" and is fine.
func EncodedRustflags() ([]string, error) {
	raw, ok := os.LookupEnv(encodedFlagsVar)
	if !ok {
		return nil, fmt.Errorf("%s is not set; refusing to probe with flags that may differ from the build's", encodedFlagsVar)
	}
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, unitSeparator), nil
}
