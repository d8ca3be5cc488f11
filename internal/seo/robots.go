// robots.go — robots.txt.
package seo

import (
	"fmt"
	"strings"
)

// disallowedPaths — пути, закрытые от индексации.
var disallowedPaths = []string{"/api/", "/private/", "/admin/"}

// Robots возвращает содержимое robots.txt.
func (s *Site) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	for _, p := range disallowedPaths {
		fmt.Fprintf(&b, "Disallow: %s\n", p)
	}
	fmt.Fprintf(&b, "\nSitemap: %s/sitemap.xml\n", s.baseURL)
	return b.String()
}
