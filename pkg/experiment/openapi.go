package experiment

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-chaosform/pkg/model"
)

// OpenAPIVersion is the document version emitted by OpenAPIDocument.
const OpenAPIVersion = "3.0.3"

// SchemaName returns the component name used for kind/category.
func SchemaName(kind Kind, category string) string {
	return string(kind) + "." + categoryOrDefault(category)
}

// OpenAPIDocument describes every kind/category spec as an OpenAPI component
// schema. Registered validation rules are attached through allOf so
// clients can enforce them without this package.
func (r *Registry) OpenAPIDocument() *openapi3.T {
	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:   "chaosform experiments",
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}

	for _, kind := range r.order {
		target := r.targets[kind]
		if !target.HasCategories() {
			doc.Components.Schemas[SchemaName(kind, "")] = openapi3.NewSchemaRef("", r.specSchema(kind, "", target.Name, target.Spec))
			continue
		}
		for _, category := range target.Categories {
			title := target.Name + " / " + category.Name
			doc.Components.Schemas[SchemaName(kind, category.Key)] = openapi3.NewSchemaRef("", r.specSchema(kind, category.Key, title, category.Spec))
		}
	}
	return doc
}

func (r *Registry) specSchema(kind Kind, category, title string, spec model.Spec) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = title

	groups := make(map[string]*openapi3.Schema)
	for _, field := range spec {
		prop := fieldSchema(field)
		if field.Group == "" {
			schema.WithProperty(field.Name, prop)
			continue
		}
		group, ok := groups[field.Group]
		if !ok {
			group = openapi3.NewObjectSchema()
			groups[field.Group] = group
			schema.WithProperty(field.Group, group)
		}
		group.WithProperty(field.Name, prop)
	}

	if rule, ok := r.ValidationFor(kind, category); ok {
		schema.AllOf = openapi3.SchemaRefs{openapi3.NewSchemaRef("", rule.Schema())}
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
		if min, ok := field.InputProps["min"].(int); ok {
			schema.WithMin(float64(min))
		}
	case model.FieldTypeSelect:
		schema = openapi3.NewStringSchema()
		enum := make([]any, 0, len(field.Items))
		for _, item := range field.Items {
			enum = append(enum, item)
		}
		schema.WithEnum(enum...)
	case model.FieldTypeLabel, model.FieldTypeAutocomplete:
		item := openapi3.NewStringSchema()
		if field.IsKV {
			item.WithPattern(`^[\w-]+:[\w-]+$`)
		}
		schema = openapi3.NewArraySchema().WithItems(item)
	case model.FieldTypeFixed:
		schema = fixedSchema(field.Value)
	default:
		schema = openapi3.NewStringSchema()
	}
	schema.Title = field.Label
	schema.Description = field.HelperText
	if field.Value != nil {
		schema.Default = model.CloneValue(field.Value)
	}
	return schema
}

func fixedSchema(value any) *openapi3.Schema {
	switch typed := value.(type) {
	case string:
		schema := openapi3.NewStringSchema()
		if typed != "" {
			schema.WithEnum(typed)
		}
		return schema
	case int, int64, float64:
		return openapi3.NewFloat64Schema()
	case []any, []string:
		return openapi3.NewArraySchema()
	default:
		return openapi3.NewObjectSchema()
	}
}
