// Package config loads configuration structs from environment variables and optional config files.
//
// Every leaf field of the struct is bound to an environment variable named after the path of the
// field, each segment being converted to SCREAMING_SNAKE_CASE:
//
//	type Config struct {
//		Log *struct {
//			Level string
//		}
//		MaxLineBytes int
//	}
//
// loaded with the prefix "APP" reads APP_LOG_LEVEL and APP_MAX_LINE_BYTES.
package config

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/a-peyrard/inflector/fn"
	"github.com/a-peyrard/inflector/option"
	"github.com/a-peyrard/inflector/reflectutils"
	"github.com/a-peyrard/inflector/str"
	"github.com/spf13/viper"
)

type (
	Options struct {
		prefix string
		file   string
	}

	// Option customizes Load and EnvKeys.
	Option = option.Option[Options]

	// WithDefault is implemented by configuration structs able to fill their own blank fields.
	WithDefault interface {
		ApplyDefault()
	}

	// EnvKey associates a configuration key with the environment variable bound to it.
	EnvKey struct {
		Key string
		Env string
	}
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func WithEnvPrefix(prefix string) Option {
	return func(opts *Options) {
		opts.prefix = prefix
	}
}

// WithConfigFile reads the given file before looking at the environment, the format is deduced from the extension.
func WithConfigFile(path string) Option {
	return func(opts *Options) {
		opts.file = path
	}
}

func Load[T any](opts ...Option) (*T, error) {
	options := option.Build(&Options{}, opts...)

	v := viper.New()
	for _, key := range envKeys(reflect.TypeOf((*T)(nil)).Elem(), options.prefix) {
		if err := v.BindEnv(key.Key, key.Env); err != nil {
			return nil, fmt.Errorf("unable to bind %s to %s: %w", key.Key, key.Env, err)
		}
	}

	if options.file != "" {
		v.SetConfigFile(options.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file %s: %w", options.file, err)
		}
	}

	var vT T
	if err := v.Unmarshal(&vT); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	reflectutils.WalkStruct(
		&vT,
		fn.AllTriConsumer(
			reflectutils.CreateNilStructs,
			reflectutils.CreateEmptySlices,
			callApplyDefault,
		),
	)

	return &vT, nil
}

// EnvKeys lists the environment variables Load binds for the given type, in field declaration order.
func EnvKeys[T any](opts ...Option) []EnvKey {
	options := option.Build(&Options{}, opts...)
	return envKeys(reflect.TypeOf((*T)(nil)).Elem(), options.prefix)
}

// EnvName computes the environment variable name of a field from its prefix and path.
func EnvName(prefix string, path ...string) string {
	segments := make([]string, 0, len(path)+1)
	if prefix != "" {
		segments = append(segments, prefix)
	}
	for _, segment := range path {
		segments = append(segments, str.ToScreamingSnakeCase(segment))
	}
	return str.ToUpperCase(strings.Join(segments, "_"))
}

func envKeys(typ reflect.Type, prefix string) []EnvKey {
	var keys []EnvKey
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return keys
	}
	collectEnvKeys(typ, prefix, nil, &keys, map[reflect.Type]bool{typ: true})
	return keys
}

func collectEnvKeys(typ reflect.Type, prefix string, parts []string, keys *[]EnvKey, visited map[reflect.Type]bool) {
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, squash := fieldName(field)
		if name == "-" {
			continue
		}

		fieldType := field.Type
		if fieldType.Kind() == reflect.Pointer && fieldType.Elem().Kind() == reflect.Struct {
			fieldType = fieldType.Elem()
		}

		if isNested(fieldType) {
			// recursive types would never end
			if visited[fieldType] {
				continue
			}
			nestedParts := parts
			if !squash {
				nestedParts = append(parts[:len(parts):len(parts)], name)
			}
			visited[fieldType] = true
			collectEnvKeys(fieldType, prefix, nestedParts, keys, visited)
			delete(visited, fieldType)
			continue
		}

		path := append(parts[:len(parts):len(parts)], name)
		*keys = append(*keys, EnvKey{
			Key: strings.Join(path, "."),
			Env: EnvName(prefix, path...),
		})
	}
}

func fieldName(field reflect.StructField) (name string, squash bool) {
	tag, ok := field.Tag.Lookup("mapstructure")
	if !ok {
		return field.Name, false
	}
	name, flags, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(flags, "squash")
}

func isNested(typ reflect.Type) bool {
	return typ.Kind() == reflect.Struct && !reflect.PointerTo(typ).Implements(textUnmarshalerType)
}

var withDefaultType = reflect.TypeOf((*WithDefault)(nil)).Elem()

func callApplyDefault(val reflect.Value, typ reflect.Type, _ []string) {
	if !val.IsValid() {
		return
	}
	switch {
	case typ.Implements(withDefaultType):
		if typ.Kind() == reflect.Pointer && val.IsNil() {
			return
		}
		val.Interface().(WithDefault).ApplyDefault()
	case typ.Kind() != reflect.Pointer && val.CanAddr() && reflect.PointerTo(typ).Implements(withDefaultType):
		// value fields with a pointer receiver
		val.Addr().Interface().(WithDefault).ApplyDefault()
	}
}
