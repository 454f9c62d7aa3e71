package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/csvsmith/internal/model"
)

const (
	autoHintColumns = 6
	autoHintMaxLen  = 60
	autoDigestLen   = 10

	// unitSeparator delimits columns in the digest payload. It is a
	// non-printable control character that essentially never appears in
	// CSV data, so ["ab","c"] and ["a","bc"] cannot collide.
	unitSeparator = "\x1f"
)

var autoHintSanitizer = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AutoCategory derives a deterministic, collision-resistant folder name for
// a header key that matched no configured signature. The name combines a
// human-scannable hint from the first few columns with a digest of the full
// key, so folders stay unique even when many distinct headers share a
// prefix. The hint follows the key's column order, which under relaxed mode
// is sorted; permuted headers that compare equal therefore land in the same
// folder.
func AutoCategory(key model.HeaderKey) string {
	hintCols := key.Columns
	if len(hintCols) > autoHintColumns {
		hintCols = hintCols[:autoHintColumns]
	}
	hint := strings.Join(hintCols, "__")
	if runes := []rune(hint); len(runes) > autoHintMaxLen {
		hint = string(runes[:autoHintMaxLen])
	}
	hint = strings.Trim(autoHintSanitizer.ReplaceAllString(hint, "_"), "_")
	if hint == "" {
		hint = "empty"
	}

	payload := strings.Join(key.Columns, unitSeparator)
	sum := sha256.Sum256([]byte(payload))
	digest := hex.EncodeToString(sum[:])[:autoDigestLen]

	return fmt.Sprintf("cluster_%s__h%s", hint, digest)
}
