package main

import (
	"fmt"
	"io"
	"strings"
)

const (
	formatMarkdown = "markdown"
	formatEnv      = "env"
)

func render(w io.Writer, format string, definitions []ConfigDefinition) error {
	switch format {
	case formatMarkdown:
		return renderMarkdown(w, definitions)
	case formatEnv:
		return renderEnv(w, definitions)
	default:
		return fmt.Errorf("unknown format %q, expected %s or %s", format, formatMarkdown, formatEnv)
	}
}

func renderMarkdown(w io.Writer, definitions []ConfigDefinition) error {
	sb := strings.Builder{}
	sb.WriteString("# Environment variables\n")

	for _, definition := range definitions {
		fmt.Fprintf(&sb, "\n## %s\n\n", definition.TypeName)
		fmt.Fprintf(&sb, "Declared in `%s`.", definition.ImportPath)
		if definition.Annotation.description != "" {
			fmt.Fprintf(&sb, " %s", definition.Annotation.description)
		}
		sb.WriteString("\n\n")

		if len(definition.Variables) == 0 {
			sb.WriteString("No variable.\n")
			continue
		}

		sb.WriteString("| Variable | Key | Type |\n")
		sb.WriteString("|----------|-----|------|\n")
		for _, variable := range definition.Variables {
			fmt.Fprintf(&sb, "| `%s` | `%s` | `%s` |\n", variable.Env, variable.Key, variable.TypeName)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func renderEnv(w io.Writer, definitions []ConfigDefinition) error {
	sb := strings.Builder{}

	for i, definition := range definitions {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "# %s (%s)\n", definition.TypeName, definition.ImportPath)
		for _, variable := range definition.Variables {
			fmt.Fprintf(&sb, "%s=\n", variable.Env)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
