package catalog

// Builtin returns the default catalog shipped with forge.
func Builtin() *Catalog {
	c := New()
	for _, t := range builtinTools {
		c.Register(t)
	}
	return c
}

var builtinTools = []Tool{
	{
		Name:    "golangci-lint",
		Summary: "Fast Go linters runner",
		Matches: []string{"go.mod"},
		Page: `# golangci-lint

Aggregates the standard Go linters behind one command.

## Install

    go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest

## Wire into forge

Add to .forge.yaml:

    checks:
      - name: lint
        command: [golangci-lint, run]
`,
	},
	{
		Name:    "eslint",
		Summary: "JavaScript/TypeScript linter",
		Matches: []string{"package.json"},
		Page: `# eslint

The standard linter for JavaScript and TypeScript projects.

## Wire into forge

    checks:
      - name: lint
        command: [npx, eslint, .]
`,
	},
	{
		Name:    "prettier",
		Summary: "Opinionated code formatter",
		Matches: []string{"package.json"},
		Page: `# prettier

Formats JS/TS, JSON, CSS and markdown consistently.

## Wire into forge

    checks:
      - name: format
        command: [npx, prettier, --check, .]
        optional: true
`,
	},
	{
		Name:    "pytest",
		Summary: "Python test framework",
		Matches: []string{"pyproject.toml", "setup.py"},
		Page: `# pytest

The de facto Python test runner.

## Wire into forge

    checks:
      - name: test
        command: [pytest]
`,
	},
}
