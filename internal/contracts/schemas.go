package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"addisnest-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ключи схем запросов
const (
	PropertyCreateRequest = "PropertyCreateRequest/1.0.0"
	PropertyUpdateRequest = "PropertyUpdateRequest/1.0.0"
)

// schemaRoots - каталоги встроенной FS и суффикс ключа для каждого
var schemaRoots = map[string]string{
	"events":   "Event",
	"requests": "Request",
}

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// сначала регистрируем все ресурсы, чтобы работали $ref между схемами
	for root := range schemaRoots {
		err := walkSchemas(root, func(path string) error {
			file, err := schemas.SchemasFS.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			return compiler.AddResource(path, file)
		})
		if err != nil {
			log.Fatalf("error adding schema resources from %s: %v", root, err)
		}
	}

	for root := range schemaRoots {
		err := walkSchemas(root, func(path string) error {
			schema, err := compiler.Compile(path)
			if err != nil {
				log.Printf("WARNING: could not compile schema %s: %v. Skipping.", path, err)
				return nil
			}
			if key := generateKeyFromPath(path); key != "" {
				compiledSchemas[key] = schema
			}
			return nil
		})
		if err != nil {
			log.Fatalf("error compiling schemas from %s: %v", root, err)
		}
	}
}

func walkSchemas(root string, fn func(path string) error) error {
	return fs.WalkDir(schemas.SchemasFS, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		return fn(path)
	})
}

// generateKeyFromPath: "events/property-created/v1.json" -> "PropertyCreatedEvent/1.0.0",
// "requests/property-create/v1.json" -> "PropertyCreateRequest/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 {
		return ""
	}
	suffix, ok := schemaRoots[parts[0]]
	if !ok || !strings.HasPrefix(parts[2], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[2], "v") + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

// ValidateEvent проверяет тело сообщения по схеме, выбранной по заголовкам event-type/event-version
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}
	return validate(fmt.Sprintf("%s/%s", eventType, eventVersion), v)
}

// ValidatePayload проверяет уже разобранный JSON (map/slice/float64...) по схеме запроса
func ValidatePayload(key string, payload interface{}) error {
	return validate(key, payload)
}

func validate(key string, v interface{}) error {
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' not found", key)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

// InvalidFields извлекает имена полей верхнего уровня из ошибки валидации схемы
func InvalidFields(err error) []string {
	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return nil
	}
	seen := make(map[string]bool)
	var fields []string
	var collect func(e *jsonschema.ValidationError)
	collect = func(e *jsonschema.ValidationError) {
		loc := strings.TrimPrefix(e.InstanceLocation, "/")
		if loc != "" {
			field := strings.SplitN(loc, "/", 2)[0]
			if !seen[field] {
				seen[field] = true
				fields = append(fields, field)
			}
		}
		for _, cause := range e.Causes {
			collect(cause)
		}
	}
	collect(vErr)
	return fields
}
