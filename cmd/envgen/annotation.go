package main

import (
	"regexp"
	"strings"

	"github.com/a-peyrard/inflector/set"
	"github.com/rs/zerolog"
)

const configAnnotationTag = "@config"

var knownProperties = set.NewWithValues("prefix")

// regex to match key=value or key="value" patterns
var propertyRegexp = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\w+))`)

type ConfigAnnotation struct {
	description string
	properties  map[string]string
}

func (c ConfigAnnotation) Prefix() string {
	return c.properties["prefix"]
}

func (c ConfigAnnotation) UnknownProperties() []string {
	var unknown []string
	for key := range c.properties {
		if !knownProperties.Contains(key) {
			unknown = append(unknown, key)
		}
	}
	return unknown
}

func hasConfigAnnotation(docText string) bool {
	for _, line := range strings.Split(docText, "\n") {
		if isConfigLine(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func isConfigLine(line string) bool {
	rest, found := strings.CutPrefix(line, configAnnotationTag)
	return found && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

func parseConfigAnnotation(logger *zerolog.Logger, docText string) ConfigAnnotation {
	var descriptionLines []string
	var configLine string

	// separate @config line from description
	for _, line := range strings.Split(docText, "\n") {
		line = strings.TrimSpace(line)

		if isConfigLine(line) {
			configLine = line
		} else if line != "" && !strings.HasPrefix(line, "@") {
			descriptionLines = append(descriptionLines, line)
		}
	}

	annotation := ConfigAnnotation{
		description: strings.TrimSpace(strings.Join(descriptionLines, " ")),
		properties:  parseProperties(configLine, configAnnotationTag),
	}
	for _, unknown := range annotation.UnknownProperties() {
		logger.Warn().Msgf("Unknown property %s in %s annotation, ignoring it", unknown, configAnnotationTag)
	}
	return annotation
}

func parseProperties(line string, tag string) map[string]string {
	properties := make(map[string]string)

	content := strings.TrimSpace(strings.TrimPrefix(line, tag))
	if content == "" {
		return properties
	}

	for _, match := range propertyRegexp.FindAllStringSubmatch(content, -1) {
		// match[2] is quoted value, match[3] is unquoted value
		value := match[2]
		if value == "" {
			value = match[3]
		}
		properties[match[1]] = value
	}

	return properties
}
