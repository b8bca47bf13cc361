package contract

import (
	"github.com/erraggy/oasdrift/reconciler"
)

// SpecParams converts documented parameters into the comparison model. The
// conversion is shape-only: $ref strings pass through for the reconciler to
// resolve, and nil entries are dropped.
func SpecParams(params []*Parameter) []*reconciler.SpecParam {
	if len(params) == 0 {
		return nil
	}
	out := make([]*reconciler.SpecParam, 0, len(params))
	for _, p := range params {
		if p == nil {
			continue
		}
		out = append(out, &reconciler.SpecParam{
			Name:   p.Name,
			In:     p.In,
			Schema: schemaInfo(p),
			Ref:    p.Ref,
		})
	}
	return out
}

// ReconcilerComponents converts the document's reusable parameter table into
// the comparison model's component table. Returns nil when the document
// defines no reusable parameters.
func ReconcilerComponents(doc *Document) reconciler.Components {
	defs := doc.ParameterComponents()
	if len(defs) == 0 {
		return nil
	}
	components := make(reconciler.Components, len(defs))
	for key, p := range defs {
		if p == nil {
			continue
		}
		components[key] = &reconciler.SpecParam{
			Name:   p.Name,
			In:     p.In,
			Schema: schemaInfo(p),
			Ref:    p.Ref,
		}
	}
	return components
}

// schemaInfo reduces a parameter's type declaration to the comparison
// subset, reading the 3.x schema object when present and falling back to the
// 2.0 inline type fields. A schema that is itself a $ref reduces to nil;
// drift checking does not chase schema-level references.
func schemaInfo(p *Parameter) *reconciler.SchemaInfo {
	if p.Schema != nil {
		if p.Schema.Ref != "" {
			return nil
		}
		info := &reconciler.SchemaInfo{
			BaseType: p.Schema.Type,
			Format:   p.Schema.Format,
		}
		if p.Schema.Items != nil {
			info.ItemType = p.Schema.Items.Type
		}
		return info
	}
	if p.Type != "" {
		info := &reconciler.SchemaInfo{
			BaseType: p.Type,
			Format:   p.Format,
		}
		if p.Items != nil {
			info.ItemType = p.Items.Type
		}
		return info
	}
	return nil
}
