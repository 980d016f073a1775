//go:build !mecab

package binding

import (
	"errors"
	"fmt"
)

// ErrNativeUnavailable is returned by Open when the module was built
// without the "mecab" build tag and therefore carries no libmecab binding.
var ErrNativeUnavailable = errors.New("binding: libmecab support not compiled in (build with -tags mecab)")

// Open would load libmecab from path. Without the "mecab" build tag it
// always fails; use NewKagome for the embedded engine instead.
func Open(path string) (Library, error) {
	return nil, fmt.Errorf("binding: open %s: %w", path, ErrNativeUnavailable)
}
