package main

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/a-peyrard/inflector/config"
	"github.com/a-peyrard/inflector/set"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedModule

type (
	EnvVarDefinition struct {
		Env      string // "APP_BROKER_SASL_USERNAME"
		Key      string // "Broker.Sasl.Username"
		TypeName string // "string", "[]string", "time.Duration"
	}

	ConfigDefinition struct {
		TypeName   string
		ImportPath string
		Annotation ConfigAnnotation
		Variables  []EnvVarDefinition
	}

	scanner struct {
		logger   *zerolog.Logger
		dir      string
		packages map[string]*packages.Package
	}
)

func newScanner(logger *zerolog.Logger, dir string) *scanner {
	return &scanner{
		logger:   logger,
		dir:      dir,
		packages: make(map[string]*packages.Package),
	}
}

func (s *scanner) load(patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  s.dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("unable to load packages %v: %w", patterns, err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, pkgErr := range pkg.Errors {
			errs = append(errs, pkgErr)
		}
		s.packages[pkg.PkgPath] = pkg
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("unable to load packages %v: %w", patterns, errors.Join(errs...))
	}

	return pkgs, nil
}

// scan looks for the structs annotated with @config in the packages matching the given patterns.
func (s *scanner) scan(patterns ...string) ([]ConfigDefinition, error) {
	pkgs, err := s.load(patterns...)
	if err != nil {
		return nil, err
	}

	var definitions []ConfigDefinition
	for _, pkg := range pkgs {
		logger := s.logger.With().Str("package", pkg.ID).Logger()
		logger.Debug().Msg("Scanning package")

		for _, file := range pkg.Syntax {
			for _, decl := range file.Decls {
				genDecl, ok := decl.(*ast.GenDecl)
				if !ok || genDecl.Tok != token.TYPE {
					continue
				}
				for _, spec := range genDecl.Specs {
					typeSpec := spec.(*ast.TypeSpec)
					structType, ok := typeSpec.Type.(*ast.StructType)
					if !ok {
						continue
					}

					doc := typeSpec.Doc
					if doc == nil && len(genDecl.Specs) == 1 {
						doc = genDecl.Doc
					}
					if doc == nil || !hasConfigAnnotation(doc.Text()) {
						continue
					}

					logger := logger.With().Str("struct", typeSpec.Name.Name).Logger()
					logger.Debug().Msg("=> Found config")

					definition := ConfigDefinition{
						TypeName:   typeSpec.Name.Name,
						ImportPath: pkg.PkgPath,
						Annotation: parseConfigAnnotation(&logger, doc.Text()),
					}
					visited := set.NewWithValues(qualifiedName(pkg.PkgPath, typeSpec.Name.Name))
					s.collect(pkg, structType, definition.Annotation.Prefix(), nil, &definition.Variables, visited)

					definitions = append(definitions, definition)
				}
			}
		}
	}

	sort.Slice(definitions, func(i, j int) bool {
		if definitions[i].ImportPath != definitions[j].ImportPath {
			return definitions[i].ImportPath < definitions[j].ImportPath
		}
		return definitions[i].TypeName < definitions[j].TypeName
	})

	return definitions, nil
}

// collect walks the fields of a struct the way config.EnvKeys walks the fields of a type.
func (s *scanner) collect(
	pkg *packages.Package,
	structType *ast.StructType,
	prefix string,
	parts []string,
	results *[]EnvVarDefinition,
	visited set.Set[string],
) {
	for _, field := range structType.Fields.List {
		for _, goName := range fieldNames(field) {
			if !ast.IsExported(goName) {
				continue
			}

			name, squash := mapstructureName(field, goName)
			if name == "-" {
				continue
			}

			if nestedPkg, nested, qualified := s.findNestedStruct(pkg, field.Type); nested != nil {
				if visited.Contains(qualified) {
					continue
				}
				nestedParts := parts
				if !squash {
					nestedParts = append(parts[:len(parts):len(parts)], name)
				}
				visited.Add(qualified)
				s.collect(nestedPkg, nested, prefix, nestedParts, results, visited)
				visited.Remove(qualified)
				continue
			}

			path := append(parts[:len(parts):len(parts)], name)
			*results = append(*results, EnvVarDefinition{
				Env:      config.EnvName(prefix, path...),
				Key:      strings.Join(path, "."),
				TypeName: formatType(field.Type),
			})
		}
	}
}

func fieldNames(field *ast.Field) []string {
	if len(field.Names) == 0 {
		// embedded field, named after its type
		return []string{embeddedTypeName(field.Type)}
	}
	names := make([]string, len(field.Names))
	for i, name := range field.Names {
		names[i] = name.Name
	}
	return names
}

func embeddedTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedTypeName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.Ident:
		return t.Name
	}
	return ""
}

func mapstructureName(field *ast.Field, goName string) (name string, squash bool) {
	if field.Tag == nil {
		return goName, false
	}
	raw, err := strconv.Unquote(field.Tag.Value)
	if err != nil {
		return goName, false
	}
	tag, ok := reflect.StructTag(raw).Lookup("mapstructure")
	if !ok {
		return goName, false
	}
	name, flags, _ := strings.Cut(tag, ",")
	if name == "" {
		name = goName
	}
	return name, strings.Contains(flags, "squash")
}

// findNestedStruct resolves the struct declaration behind a field type, if the field is a struct
// declared in the scanned modules that does not decode itself from text.
func (s *scanner) findNestedStruct(pkg *packages.Package, fieldType ast.Expr) (*packages.Package, *ast.StructType, string) {
	// Handle pointer types: *config.BrokerConfig
	if starExpr, ok := fieldType.(*ast.StarExpr); ok {
		fieldType = starExpr.X
	}

	targetPkg := pkg
	var typeName string
	switch t := fieldType.(type) {
	case *ast.Ident:
		typeName = t.Name
	case *ast.SelectorExpr:
		ident, ok := t.X.(*ast.Ident)
		if !ok {
			return nil, nil, ""
		}
		importPath := findImportPathForAlias(pkg, ident.Name)
		if importPath == "" {
			return nil, nil, ""
		}
		targetPkg = s.lookupPackage(importPath)
		if targetPkg == nil {
			return nil, nil, ""
		}
		typeName = t.Sel.Name
	default:
		return nil, nil, ""
	}

	structType := findStructInPackage(targetPkg, typeName)
	if structType == nil || hasMethod(targetPkg, typeName, "UnmarshalText") {
		return nil, nil, ""
	}
	return targetPkg, structType, qualifiedName(targetPkg.PkgPath, typeName)
}

// lookupPackage returns an already loaded package, or loads it. Standard library packages are never walked.
func (s *scanner) lookupPackage(importPath string) *packages.Package {
	pkg, found := s.packages[importPath]
	if !found {
		pkgs, err := s.load(importPath)
		if err != nil || len(pkgs) == 0 {
			s.logger.Warn().Err(err).Str("import", importPath).Msg("Unable to load imported package, fields are kept as is")
			s.packages[importPath] = nil
			return nil
		}
		pkg = pkgs[0]
	}
	if pkg == nil || pkg.Module == nil {
		return nil
	}
	return pkg
}

func findImportPathForAlias(pkg *packages.Package, packageAlias string) string {
	for _, file := range pkg.Syntax {
		for _, imp := range file.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			var alias string
			if imp.Name != nil {
				alias = imp.Name.Name
			} else {
				parts := strings.Split(importPath, "/")
				alias = parts[len(parts)-1]
			}

			if alias == packageAlias {
				return importPath
			}
		}
	}
	return ""
}

func findStructInPackage(pkg *packages.Package, typeName string) *ast.StructType {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec := spec.(*ast.TypeSpec)
				if typeSpec.Name.Name != typeName {
					continue
				}
				structType, _ := typeSpec.Type.(*ast.StructType)
				return structType
			}
		}
	}
	return nil
}

func hasMethod(pkg *packages.Package, typeName string, method string) bool {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Recv == nil || funcDecl.Name.Name != method || len(funcDecl.Recv.List) == 0 {
				continue
			}
			if embeddedTypeName(funcDecl.Recv.List[0].Type) == typeName {
				return true
			}
		}
	}
	return false
}

func qualifiedName(importPath string, typeName string) string {
	return importPath + "." + typeName
}

func formatType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return "*" + formatType(t.X)
	case *ast.SelectorExpr:
		return formatType(t.X) + "." + t.Sel.Name
	case *ast.ArrayType:
		return "[]" + formatType(t.Elt)
	case *ast.MapType:
		return "map[" + formatType(t.Key) + "]" + formatType(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	default:
		return "unknown"
	}
}
