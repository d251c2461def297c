// Package classify holds the pure filename/path heuristics used to bucket
// repository files into UI components, pages, and technology tags.
package classify

import (
	"path"
	"strings"
)

// componentExts are the extensions a file must carry to count as a UI component.
var componentExts = map[string]bool{
	".tsx":    true,
	".jsx":    true,
	".vue":    true,
	".svelte": true,
}

// componentMarkers are path fragments (lowercased) that mark component trees.
var componentMarkers = []string{
	"/component/", "/components/",
	"/ui/",
	"/widget/", "/widgets/",
	"/shared/",
}

// pageMarkers are path fragments that mark routing/page trees. Deliberately
// loose: false positives are acceptable.
var pageMarkers = []string{
	"/page/", "/pages/",
	"/route/", "/routes/",
	"/view/", "/views/",
	"/screen/", "/screens/",
}

var pagePrefixes = []string{"page/", "pages/"}

// appRouterExts are the extensions recognized under the app/ router convention.
var appRouterExts = map[string]bool{
	".tsx": true,
	".jsx": true,
	".ts":  true,
	".js":  true,
}

// techRule maps a case-insensitive filename substring to a technology tag.
type techRule struct {
	match string
	tag   string
}

// techRules is the static marker table. Filename matching is substring based,
// so "docker" covers Dockerfile, docker-compose.yml and friends.
var techRules = []techRule{
	{"package.json", "Node.js"},
	{"next.config", "Next.js"},
	{"nuxt.config", "Nuxt.js"},
	{"vue.config", "Vue.js"},
	{"angular.json", "Angular"},
	{"svelte.config", "Svelte"},
	{"astro.config", "Astro"},
	{"remix.config", "Remix"},
	{"gatsby-config", "Gatsby"},
	{"vite.config", "Vite"},
	{"webpack", "Webpack"},
	{"tailwind.config", "Tailwind CSS"},
	{"tsconfig", "TypeScript"},
	{"docker-compose", "Docker Compose"},
	{"docker", "Docker"},
	{"go.mod", "Go"},
	{"cargo.toml", "Rust"},
	{"requirements.txt", "Python"},
	{"pipfile", "Python"},
	{"gemfile", "Ruby"},
	{"pom.xml", "Maven"},
	{"build.gradle", "Gradle"},
	{"composer.json", "PHP"},
	{"eslint", "ESLint"},
	{"prettier", "Prettier"},
	{"jest.config", "Jest"},
	{"vitest", "Vitest"},
	{"cypress", "Cypress"},
	{"prisma", "Prisma"},
	{"firebase.json", "Firebase"},
	{"vercel.json", "Vercel"},
	{"netlify.toml", "Netlify"},
}

// graphQLTag is added when "graphql" appears anywhere in the path.
const graphQLTag = "GraphQL"

// IsComponent reports whether a file looks like a UI component: it must have
// a component extension AND live under a component-ish directory.
func IsComponent(fileName, filePath string) bool {
	if !componentExts[strings.ToLower(path.Ext(fileName))] {
		return false
	}
	p := strings.ToLower(filePath)
	for _, m := range componentMarkers {
		if strings.Contains(p, m) {
			return true
		}
	}
	return false
}

// IsPage reports whether a file looks like a page/route. Any single marker is
// enough; heuristic, not type-exact.
func IsPage(fileName, filePath string) bool {
	p := strings.ToLower(filePath)
	for _, m := range pageMarkers {
		if strings.Contains(p, m) {
			return true
		}
	}
	for _, pre := range pagePrefixes {
		if strings.HasPrefix(p, pre) {
			return true
		}
	}
	if strings.HasPrefix(p, "app/") && appRouterExts[strings.ToLower(path.Ext(fileName))] {
		return true
	}
	n := strings.ToLower(fileName)
	return strings.Contains(n, "page") || strings.Contains(n, "route")
}

// Technologies returns the technology tags inferred from a single file.
// Matching is case-insensitive substring against the static marker table;
// absence of matches yields an empty slice, never an error.
func Technologies(fileName, filePath string) []string {
	var tags []string
	n := strings.ToLower(fileName)
	for _, r := range techRules {
		if strings.Contains(n, r.match) {
			tags = append(tags, r.tag)
		}
	}
	if strings.Contains(strings.ToLower(filePath), "graphql") {
		tags = append(tags, graphQLTag)
	}
	return tags
}
