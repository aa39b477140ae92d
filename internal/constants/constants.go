package constants

import (
	"time"
)

const (
	CLIName = "create-starter"

	// Default values
	DefaultProjectName     = "my-app"
	DefaultEnvFileName     = ".env"
	DefaultPackageManager  = "npm"
	DefaultTemplatesSource = "gh:honojs/starter/templates"

	// Environment variables
	EnvVarGitHubToken        = "GITHUB_TOKEN"
	EnvVarNpmUserAgent       = "npm_config_user_agent"
	EnvVarNoUpdateCheck      = "CREATE_STARTER_NO_UPDATE_CHECK"
	ProjectNamePlaceholder   = "%%PROJECT_NAME%%"
	WranglerConfigFileName   = "wrangler.toml"
	PackageJSONFileName      = "package.json"
	PackageManagerProbeLimit = 3 * time.Second

	// Templates with special handling
	TemplateCloudflareWorkers = "cloudflare-workers"
	TemplateDeno              = "deno"
	TemplateNetlify           = "netlify"
)

// Templates lists the template directories offered by the template prompt,
// in display order.
var Templates = []string{
	"aws-lambda",
	"bun",
	"cloudflare-pages",
	TemplateCloudflareWorkers,
	TemplateDeno,
	"fastly",
	"lambda-edge",
	TemplateNetlify,
	"nextjs",
	"nodejs",
	"vercel",
	"x-basic",
}

// TemplatesWithoutDependencies never run the dependency interview.
var TemplatesWithoutDependencies = []string{
	TemplateDeno,
	TemplateNetlify,
}
