package blob

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewKey builds a collision resistant object key for an uploaded file:
// <unix millis>_<random suffix>.<extension of the original name>.
func NewKey(now time.Time, filename string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s.%s", now.UnixMilli(), suffix, Extension(filename))
}

// Extension is the text after the last dot of filename, or the whole name
// when it has none.
func Extension(filename string) string {
	name := filename
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
