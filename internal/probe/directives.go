package probe

import (
	"fmt"
	"io"
)

// EmitCfg writes a cargo:rustc-cfg build-script directive for name.
func EmitCfg(w io.Writer, name string) error {
	_, err := fmt.Fprintf(w, "cargo:rustc-cfg=%s\n", name)
	return err
}

// EmitRerunIfChanged writes a cargo:rerun-if-changed directive for path.
func EmitRerunIfChanged(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "cargo:rerun-if-changed=%s\n", path)
	return err
}
