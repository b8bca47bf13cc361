package scanner

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/erraggy/oasdrift/internal/pathutil"
	"github.com/erraggy/oasdrift/reconciler"
)

// ExtractFile walks one parsed file and returns the handlers it declares,
// along with warnings for directives and signatures that do not follow the
// convention. Params structs are looked up in the same file; use a Scanner
// when a handler and its params struct may live in different files.
func ExtractFile(fset *token.FileSet, file *ast.File) ([]*Handler, []string) {
	return extract(fset, file, fileStructs(file))
}

// fileStructs indexes the struct type declarations of a file by name.
func fileStructs(file *ast.File) map[string]*ast.StructType {
	structs := make(map[string]*ast.StructType)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			if st, ok := ts.Type.(*ast.StructType); ok {
				structs[ts.Name.Name] = st
			}
		}
	}
	return structs
}

type extractor struct {
	fset     *token.FileSet
	structs  map[string]*ast.StructType
	warnings []string
}

func extract(fset *token.FileSet, file *ast.File, structs map[string]*ast.StructType) ([]*Handler, []string) {
	x := &extractor{fset: fset, structs: structs}
	var handlers []*Handler
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Doc == nil {
			continue
		}
		handlers = append(handlers, x.extractFunc(fn)...)
	}
	return handlers, x.warnings
}

// extractFunc reads the directives off one function. A function may carry
// several directives and then implements each operation with the same
// parameter set.
func (x *extractor) extractFunc(fn *ast.FuncDecl) []*Handler {
	var handlers []*Handler
	for _, comment := range fn.Doc.List {
		dir, err := parseDirective(comment.Text)
		if err != nil {
			x.warnf(comment.Pos(), "%v", err)
			continue
		}
		if dir == nil {
			continue
		}
		handlers = append(handlers, &Handler{
			Method:   dir.method,
			Path:     dir.path,
			FuncName: fn.Name.Name,
			Location: x.loc(fn.Name.Pos()),
			Params:   x.signatureParams(fn, dir),
		})
	}
	return handlers
}

// signatureParams derives the implemented parameters from a handler
// signature: positional path segments named by the directive's template,
// then the expanded fields of a trailing params struct.
func (x *extractor) signatureParams(fn *ast.FuncDecl, dir *directive) []reconciler.ImplParam {
	type sigParam struct {
		name string
		typ  ast.Expr
		pos  token.Pos
	}
	var sig []sigParam
	for _, field := range fn.Type.Params.List {
		if isPlumbingType(field.Type) {
			continue
		}
		if len(field.Names) == 0 {
			sig = append(sig, sigParam{typ: field.Type, pos: field.Pos()})
			continue
		}
		for _, name := range field.Names {
			sig = append(sig, sigParam{name: name.Name, typ: field.Type, pos: name.Pos()})
		}
	}

	// A trailing params struct holds the named query and header parameters.
	var fields []reconciler.ImplParam
	if n := len(sig); n > 0 {
		if structName, ok := paramsStructName(sig[n-1].typ); ok {
			last := sig[n-1]
			sig = sig[:n-1]
			if st, found := x.structs[structName]; found {
				fields = x.structParams(st)
			} else {
				x.warnf(last.pos, "scanner: params struct %s is not declared in the scanned files; its fields are not checked", structName)
			}
		}
	}

	segments := pathutil.ParamNames(dir.path)
	if len(sig) != len(segments) {
		x.warnf(fn.Name.Pos(), "scanner: %s declares %d path segment parameter(s) but the template %s names %d",
			fn.Name.Name, len(sig), dir.path, len(segments))
	}

	params := make([]reconciler.ImplParam, 0, len(sig)+len(fields))
	for i, p := range sig {
		if i >= len(segments) {
			break
		}
		params = append(params, reconciler.ImplParam{
			Name:         segments[i],
			DeclaredType: types.ExprString(p.typ),
			Kind:         reconciler.KindPathSegment,
			Location:     x.loc(p.pos),
		})
	}
	return append(params, fields...)
}

// structParams expands a params struct into named parameters, one per
// exported field, in declaration order.
func (x *extractor) structParams(st *ast.StructType) []reconciler.ImplParam {
	var params []reconciler.ImplParam
	for _, field := range st.Fields.List {
		if len(field.Names) == 0 {
			x.warnf(field.Pos(), "scanner: embedded params struct fields are not expanded")
			continue
		}
		kind := reconciler.KindRequired
		if _, isPtr := field.Type.(*ast.StarExpr); isPtr {
			kind = reconciler.KindDefaultable
		}
		declared := types.ExprString(field.Type)
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			wire, ok := wireName(field, name.Name)
			if !ok {
				continue
			}
			params = append(params, reconciler.ImplParam{
				Name:         wire,
				DeclaredType: declared,
				Kind:         kind,
				Location:     x.loc(name.Pos()),
			})
		}
	}
	return params
}

func (x *extractor) warnf(pos token.Pos, format string, args ...any) {
	x.warnings = append(x.warnings, fmt.Sprintf("%s: %s", x.fset.Position(pos), fmt.Sprintf(format, args...)))
}

func (x *extractor) loc(pos token.Pos) reconciler.Location {
	p := x.fset.Position(pos)
	return reconciler.Location{File: p.Filename, Line: p.Line, Column: p.Column}
}

// isPlumbingType reports whether a signature parameter is request plumbing
// rather than an implemented parameter.
func isPlumbingType(expr ast.Expr) bool {
	switch types.ExprString(expr) {
	case "http.ResponseWriter", "*http.Request", "context.Context":
		return true
	default:
		return false
	}
}

// paramsStructName returns the type name of a trailing params struct
// parameter: a plain or pointered identifier ending in "Params".
func paramsStructName(expr ast.Expr) (string, bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	ident, ok := expr.(*ast.Ident)
	if !ok || !strings.HasSuffix(ident.Name, "Params") {
		return "", false
	}
	return ident.Name, true
}

// wireName derives the name a field is bound from: the form tag, then the
// json tag, then the field name itself with its first rune lowered and the
// keyword-escape underscore trimmed. ok is false when a tag opts the field
// out with "-".
func wireName(field *ast.Field, fieldName string) (string, bool) {
	if field.Tag != nil {
		tag := reflect.StructTag(strings.Trim(field.Tag.Value, "`"))
		for _, key := range []string{"form", "json"} {
			value, ok := tag.Lookup(key)
			if !ok {
				continue
			}
			name, _, _ := strings.Cut(value, ",")
			if name == "-" {
				return "", false
			}
			if name != "" {
				return name, true
			}
		}
	}
	return lowerFirst(unescapeName(fieldName)), true
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
