package cfgm

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	yamlv3 "go.yaml.in/yaml/v3"
)

var (
	durationType = reflect.TypeFor[time.Duration]()
	timeType     = reflect.TypeFor[time.Time]()
)

// configTagName 返回字段的配置 key（json tag 的名称部分），"-" 或缺失时为空。
func configTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// isStructType 判断是否需要按嵌套结构体展开；time.Duration / time.Time 视为叶子。
func isStructType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	return typ.Kind() == reflect.Struct && typ != durationType && typ != timeType
}

// ═══════════════════════════════════════════════════════════════════════════
// struct → map
// ═══════════════════════════════════════════════════════════════════════════

func structToMap(cfg any) map[string]any {
	val := reflect.ValueOf(cfg)

	return structValueToMap(val)
}

func structValueToMap(val reflect.Value) map[string]any {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return map[string]any{}
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return map[string]any{}
	}

	typ := val.Type()
	out := make(map[string]any, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		key := configTagName(field)
		if key == "" {
			continue
		}
		out[key] = valueToAny(val.Field(i))
	}

	return out
}

func valueToAny(val reflect.Value) any {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	if isStructType(val.Type()) {
		return structValueToMap(val)
	}

	switch val.Kind() {
	case reflect.Slice:
		if val.IsNil() {
			return nil
		}
		out := make([]any, val.Len())
		for i := range val.Len() {
			out[i] = valueToAny(val.Index(i))
		}

		return out
	case reflect.Map:
		if val.IsNil() {
			return nil
		}
		out := make(map[string]any, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = valueToAny(iter.Value())
		}

		return out
	default:
		return val.Interface()
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// 文件解析与合并
// ═══════════════════════════════════════════════════════════════════════════

// parseConfigBytes 按扩展名解析配置：.json 使用 JSON，其余按 YAML。
func parseConfigBytes(path string, content []byte) (map[string]any, error) {
	var raw any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, err
	}

	switch typed := normalizeMapKeys(raw).(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return typed, nil
	default:
		return nil, errors.New("config root must be object")
	}
}

// normalizeMapKeys 将 YAML 可能产生的 map[any]any 统一为 map[string]any。
func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}

		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}

		return typed
	default:
		return val
	}
}

// mergeMaps 将 src 深度合并进 dst，同名的非 map 值以 src 为准。
func mergeMaps(dst, src map[string]any) {
	for key, value := range src {
		if srcChild, ok := value.(map[string]any); ok {
			if dstChild, ok := dst[key].(map[string]any); ok {
				mergeMaps(dstChild, srcChild)

				continue
			}
		}
		dst[key] = value
	}
}

// setByPath 按 "a.b.c" 路径写入值，必要时创建中间 map。
func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
