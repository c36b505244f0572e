package masters

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxSlugLength = 48

// Slugify строит URL-safe slug: латиница и цифры в нижнем регистре через дефис
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= maxSlugLength {
			break
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "master-" + shortID()
	}
	return slug
}

func withSuffix(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(attempt+1)
}

func withRandomSuffix(base string) string {
	return base + "-" + shortID()
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
