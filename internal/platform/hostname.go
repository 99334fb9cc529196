package platform

import "fmt"

// PreviewHostname generates the git-branch preview hostname of a project.
// Example: shop-git-develop.vercel.app
func PreviewHostname(projectName, branch, suffix string) string {
	if projectName == "" {
		projectName = "unknown"
	}
	return fmt.Sprintf("%s-git-%s.%s", projectName, branch, suffix)
}
