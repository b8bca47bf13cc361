package pathutil

import (
	"regexp"
	"strings"
)

// PathParamRegex matches path template parameters like {paramName}.
// It captures the parameter name inside the braces.
var PathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// ParamNames returns the template parameter names in path, in order of
// appearance: "/pets/{petId}/toys/{toyId}" yields ["petId", "toyId"].
func ParamNames(path string) []string {
	matches := PathParamRegex.FindAllStringSubmatch(path, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Normalize returns the canonical display form of a path template: a single
// leading slash, no trailing slash (except for the root path itself), and
// duplicate slashes collapsed.
func Normalize(path string) string {
	if path == "" {
		return "/"
	}
	var b strings.Builder
	b.Grow(len(path) + 1)
	b.WriteByte('/')
	prevSlash := true
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
			b.WriteByte(c)
			continue
		}
		prevSlash = false
		b.WriteByte(c)
	}
	s := b.String()
	if len(s) > 1 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// TemplateKey reduces a path template to its structural shape by replacing
// every {name} segment with {}. Two templates with the same key address the
// same route even when their parameter names differ:
// "/pets/{petId}" and "/pets/{id}" both yield "/pets/{}".
func TemplateKey(path string) string {
	return PathParamRegex.ReplaceAllString(Normalize(path), "{}")
}
