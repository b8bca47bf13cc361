package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasdrift/internal/severity"
)

func testLoc(line int) Location {
	return Location{File: "handlers.go", Line: line, Column: 2}
}

func TestReconcileMatchedParameters(t *testing.T) {
	tests := []struct {
		name string
		impl ImplParam
		spec *SpecParam
	}{
		{
			name: "int against integer",
			impl: ImplParam{Name: "limit", DeclaredType: "int", Kind: KindRequired},
			spec: &SpecParam{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		},
		{
			name: "int64 against integer",
			impl: ImplParam{Name: "limit", DeclaredType: "int64", Kind: KindRequired},
			spec: &SpecParam{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		},
		{
			name: "int against integer with int64 format",
			impl: ImplParam{Name: "limit", DeclaredType: "int", Kind: KindRequired},
			spec: &SpecParam{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer", Format: "int64"}},
		},
		{
			name: "int32 against integer with int32 format",
			impl: ImplParam{Name: "limit", DeclaredType: "int32", Kind: KindRequired},
			spec: &SpecParam{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer", Format: "int32"}},
		},
		{
			name: "float64 against number",
			impl: ImplParam{Name: "weight", DeclaredType: "float64", Kind: KindRequired},
			spec: &SpecParam{Name: "weight", In: "query", Schema: &SchemaInfo{BaseType: "number"}},
		},
		{
			name: "float32 against number with float format",
			impl: ImplParam{Name: "weight", DeclaredType: "float32", Kind: KindRequired},
			spec: &SpecParam{Name: "weight", In: "query", Schema: &SchemaInfo{BaseType: "number", Format: "float"}},
		},
		{
			name: "float64 against number with double format",
			impl: ImplParam{Name: "weight", DeclaredType: "float64", Kind: KindRequired},
			spec: &SpecParam{Name: "weight", In: "query", Schema: &SchemaInfo{BaseType: "number", Format: "double"}},
		},
		{
			name: "bool against boolean",
			impl: ImplParam{Name: "verbose", DeclaredType: "bool", Kind: KindRequired},
			spec: &SpecParam{Name: "verbose", In: "query", Schema: &SchemaInfo{BaseType: "boolean"}},
		},
		{
			name: "pointer sheds optionality marker",
			impl: ImplParam{Name: "q", DeclaredType: "*string", Kind: KindDefaultable},
			spec: &SpecParam{Name: "q", In: "query", Schema: &SchemaInfo{BaseType: "string"}},
		},
		{
			name: "string slice against array of string",
			impl: ImplParam{Name: "tags", DeclaredType: "[]string", Kind: KindRequired},
			spec: &SpecParam{Name: "tags", In: "query", Schema: &SchemaInfo{BaseType: "array", ItemType: "string"}},
		},
		{
			name: "int slice against array of integer",
			impl: ImplParam{Name: "ids", DeclaredType: "[]int", Kind: KindRequired},
			spec: &SpecParam{Name: "ids", In: "query", Schema: &SchemaInfo{BaseType: "array", ItemType: "integer"}},
		},
		{
			name: "path segment int64 against integer",
			impl: ImplParam{Name: "petId", DeclaredType: "int64", Kind: KindPathSegment},
			spec: &SpecParam{Name: "petId", In: "path", Schema: &SchemaInfo{BaseType: "integer"}},
		},
		{
			name: "path segment string against string",
			impl: ImplParam{Name: "owner", DeclaredType: "string", Kind: KindPathSegment},
			spec: &SpecParam{Name: "owner", In: "path", Schema: &SchemaInfo{BaseType: "string"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("get", "/pets/{petId}")
			findings := r.Reconcile([]ImplParam{tt.impl}, []*SpecParam{tt.spec}, nil)
			assert.Empty(t, findings)
		})
	}
}

func TestReconcileTypeMismatch(t *testing.T) {
	tests := []struct {
		name         string
		impl         ImplParam
		spec         *SpecParam
		wantExpected string
		wantActual   string
	}{
		{
			name:         "string against integer",
			impl:         ImplParam{Name: "limit", DeclaredType: "string", Kind: KindRequired},
			spec:         &SpecParam{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
			wantExpected: "integer",
			wantActual:   "string",
		},
		{
			name:         "int against integer with int32 format",
			impl:         ImplParam{Name: "limit", DeclaredType: "int", Kind: KindRequired},
			spec:         &SpecParam{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer", Format: "int32"}},
			wantExpected: "int32",
			wantActual:   "int",
		},
		{
			name:         "float64 against number with float format",
			impl:         ImplParam{Name: "ratio", DeclaredType: "float64", Kind: KindRequired},
			spec:         &SpecParam{Name: "ratio", In: "query", Schema: &SchemaInfo{BaseType: "number", Format: "float"}},
			wantExpected: "float",
			wantActual:   "float64",
		},
		{
			name:         "int slice against array of string",
			impl:         ImplParam{Name: "tags", DeclaredType: "[]int", Kind: KindRequired},
			spec:         &SpecParam{Name: "tags", In: "query", Schema: &SchemaInfo{BaseType: "array", ItemType: "string"}},
			wantExpected: "string[]",
			wantActual:   "[]int",
		},
		{
			name:         "slice against scalar string",
			impl:         ImplParam{Name: "name", DeclaredType: "[]string", Kind: KindRequired},
			spec:         &SpecParam{Name: "name", In: "query", Schema: &SchemaInfo{BaseType: "string"}},
			wantExpected: "string",
			wantActual:   "[]string",
		},
		{
			name:         "unmappable object schema",
			impl:         ImplParam{Name: "filter", DeclaredType: "string", Kind: KindRequired},
			spec:         &SpecParam{Name: "filter", In: "query", Schema: &SchemaInfo{BaseType: "object"}},
			wantExpected: "object[]",
			wantActual:   "string",
		},
		{
			name:         "unbindable path segment type",
			impl:         ImplParam{Name: "petId", DeclaredType: "[]byte", Kind: KindPathSegment},
			spec:         &SpecParam{Name: "petId", In: "path", Schema: &SchemaInfo{BaseType: "integer"}},
			wantExpected: "integer",
			wantActual:   "unmatched",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.impl.Location = testLoc(14)
			r := New("get", "/pets")
			findings := r.Reconcile([]ImplParam{tt.impl}, []*SpecParam{tt.spec}, nil)
			require.Len(t, findings, 1)
			f := findings[0]
			assert.Equal(t, TypeMismatchParameter, f.Kind)
			assert.Equal(t, tt.impl.Name, f.Parameter)
			assert.Equal(t, tt.wantExpected, f.Expected)
			assert.Equal(t, tt.wantActual, f.Actual)
			assert.Equal(t, "get", f.Method)
			assert.Equal(t, "/pets", f.Path)
			assert.Equal(t, testLoc(14), f.Location)
			assert.Equal(t, severity.SeverityError, f.Severity)
		})
	}
}

func TestReconcileUndefinedParameter(t *testing.T) {
	t.Run("implemented but not documented", func(t *testing.T) {
		impl := []ImplParam{{
			Name:         "debug",
			DeclaredType: "bool",
			Kind:         KindRequired,
			Location:     testLoc(21),
		}}
		spec := []*SpecParam{
			{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, nil)

		// debug is undocumented and limit is unimplemented.
		require.Len(t, findings, 2)
		assert.Equal(t, UndefinedParameter, findings[0].Kind)
		assert.Equal(t, "debug", findings[0].Parameter)
		assert.Equal(t, testLoc(21), findings[0].Location)
		assert.Equal(t, MissingParameter, findings[1].Kind)
		assert.Equal(t, "limit", findings[1].Parameter)
	})

	t.Run("no documented parameters at all", func(t *testing.T) {
		impl := []ImplParam{{Name: "debug", DeclaredType: "bool", Kind: KindRequired}}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, nil, nil)
		require.Len(t, findings, 1)
		assert.Equal(t, UndefinedParameter, findings[0].Kind)
		assert.Equal(t, "debug", findings[0].Parameter)
	})

	t.Run("path is normalized", func(t *testing.T) {
		impl := []ImplParam{{Name: "debug", DeclaredType: "bool", Kind: KindRequired}}
		r := New("get", "pets//search/")
		findings := r.Reconcile(impl, nil, nil)
		require.Len(t, findings, 1)
		assert.Equal(t, "/pets/search", findings[0].Path)
	})
}

func TestReconcileMissingParameter(t *testing.T) {
	t.Run("documented but not implemented", func(t *testing.T) {
		fallback := testLoc(9)
		spec := []*SpecParam{
			{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
			{Name: "offset", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		}
		r := New("get", "/pets")
		r.FallbackLocation = fallback
		findings := r.Reconcile(nil, spec, nil)

		require.Len(t, findings, 2)
		for i, want := range []string{"limit", "offset"} {
			assert.Equal(t, MissingParameter, findings[i].Kind)
			assert.Equal(t, want, findings[i].Parameter)
			assert.Equal(t, "/pets", findings[i].Path)
			assert.Equal(t, fallback, findings[i].Location)
		}
	})

	t.Run("header parameters are exempt", func(t *testing.T) {
		spec := []*SpecParam{
			{Name: "X-Trace-Id", In: "header", Schema: &SchemaInfo{BaseType: "string"}},
		}
		r := New("get", "/pets")
		findings := r.Reconcile(nil, spec, nil)
		assert.Empty(t, findings)
	})

	t.Run("referenced header parameters are exempt", func(t *testing.T) {
		components := Components{
			"traceHeader": {Name: "X-Trace-Id", In: "header", Schema: &SchemaInfo{BaseType: "string"}},
		}
		spec := []*SpecParam{{Ref: "#/components/parameters/traceHeader"}}
		r := New("get", "/pets")
		findings := r.Reconcile(nil, spec, components)
		assert.Empty(t, findings)
	})
}

func TestReconcileReferencedParameters(t *testing.T) {
	components := Components{
		"tagsParam": {
			Name:   "tags",
			In:     "query",
			Schema: &SchemaInfo{BaseType: "array", ItemType: "string"},
		},
		"limitParam": {
			In:     "query",
			Schema: &SchemaInfo{BaseType: "integer"},
		},
	}

	t.Run("resolved array matches slice", func(t *testing.T) {
		impl := []ImplParam{{Name: "tags", DeclaredType: "[]string", Kind: KindRequired}}
		spec := []*SpecParam{{Ref: "#/components/parameters/tagsParam"}}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, components)
		assert.Empty(t, findings)
	})

	t.Run("resolved array mismatch uses component name", func(t *testing.T) {
		impl := []ImplParam{{Name: "tags", DeclaredType: "[]int", Kind: KindRequired}}
		spec := []*SpecParam{{Ref: "#/components/parameters/tagsParam"}}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, components)
		require.Len(t, findings, 1)
		assert.Equal(t, TypeMismatchParameter, findings[0].Kind)
		assert.Equal(t, "tags", findings[0].Parameter)
		assert.Equal(t, "string[]", findings[0].Expected)
		assert.Equal(t, "[]int", findings[0].Actual)
	})

	t.Run("component without a name falls back to its key", func(t *testing.T) {
		impl := []ImplParam{{Name: "limitParam", DeclaredType: "int", Kind: KindRequired}}
		spec := []*SpecParam{{Ref: "#/components/parameters/limitParam"}}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, components)
		assert.Empty(t, findings)
	})

	t.Run("swagger style pointer resolves", func(t *testing.T) {
		impl := []ImplParam{{Name: "tags", DeclaredType: "[]string", Kind: KindRequired}}
		spec := []*SpecParam{{Ref: "#/parameters/tagsParam"}}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, components)
		assert.Empty(t, findings)
	})

	t.Run("unresolvable reference is skipped in both passes", func(t *testing.T) {
		impl := []ImplParam{{Name: "tags", DeclaredType: "[]string", Kind: KindRequired}}
		spec := []*SpecParam{{Ref: "#/components/parameters/gone"}}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, components)

		// The dangling reference is not a candidate, so tags has no
		// documented counterpart; the reference itself produces nothing.
		require.Len(t, findings, 1)
		assert.Equal(t, UndefinedParameter, findings[0].Kind)
		assert.Equal(t, "tags", findings[0].Parameter)
	})

	t.Run("run continues past an unresolvable reference", func(t *testing.T) {
		impl := []ImplParam{{Name: "tags", DeclaredType: "[]string", Kind: KindRequired}}
		spec := []*SpecParam{
			{Ref: "#/components/parameters/gone"},
			{Ref: "#/components/parameters/tagsParam"},
		}
		r := New("get", "/pets")
		findings := r.Reconcile(impl, spec, components)
		assert.Empty(t, findings)
	})
}

func TestReconcileFirstMismatchWins(t *testing.T) {
	// A parameter that both misses the array shape and would fail the plain
	// comparison reports exactly one mismatch, the array-shaped one.
	impl := []ImplParam{{Name: "tags", DeclaredType: "[]bool", Kind: KindRequired}}
	spec := []*SpecParam{{Name: "tags", In: "query", Schema: &SchemaInfo{BaseType: "array", ItemType: "string"}}}
	r := New("get", "/pets")
	findings := r.Reconcile(impl, spec, nil)
	require.Len(t, findings, 1)
	assert.Equal(t, "string[]", findings[0].Expected)
}

func TestReconcileStopsAfterNameMatch(t *testing.T) {
	// Once a documented candidate satisfies the parameter, later same-named
	// entries are not compared.
	impl := []ImplParam{{Name: "limit", DeclaredType: "int", Kind: KindRequired}}
	spec := []*SpecParam{
		{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "string"}},
	}
	r := New("get", "/pets")
	findings := r.Reconcile(impl, spec, nil)
	assert.Empty(t, findings)
}

func TestReconcileFindingOrder(t *testing.T) {
	impl := []ImplParam{
		{Name: "limit", DeclaredType: "string", Kind: KindRequired},
		{Name: "debug", DeclaredType: "bool", Kind: KindRequired},
	}
	spec := []*SpecParam{
		{Name: "offset", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
	}
	r := New("get", "/pets")
	findings := r.Reconcile(impl, spec, nil)

	// Implementation-side findings in declaration order, then the
	// documentation-side findings in documentation order.
	require.Len(t, findings, 3)
	assert.Equal(t, TypeMismatchParameter, findings[0].Kind)
	assert.Equal(t, "limit", findings[0].Parameter)
	assert.Equal(t, UndefinedParameter, findings[1].Kind)
	assert.Equal(t, "debug", findings[1].Parameter)
	assert.Equal(t, MissingParameter, findings[2].Kind)
	assert.Equal(t, "offset", findings[2].Parameter)
}

func TestReconcileIdempotent(t *testing.T) {
	impl := []ImplParam{
		{Name: "limit", DeclaredType: "string", Kind: KindRequired, Location: testLoc(5)},
		{Name: "debug", DeclaredType: "bool", Kind: KindRequired, Location: testLoc(6)},
		{Name: "tags", DeclaredType: "[]string", Kind: KindRequired, Location: testLoc(7)},
	}
	spec := []*SpecParam{
		{Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		{Ref: "#/components/parameters/tagsParam"},
		{Name: "offset", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
	}
	components := Components{
		"tagsParam": {Name: "tags", In: "query", Schema: &SchemaInfo{BaseType: "array", ItemType: "string"}},
	}

	r := New("get", "/pets")
	first := r.Reconcile(impl, spec, components)
	second := r.Reconcile(impl, spec, components)
	assert.Equal(t, first, second)
}

func TestReconcileEmptyInputs(t *testing.T) {
	r := New("get", "/pets")
	assert.Empty(t, r.Reconcile(nil, nil, nil))
	assert.Empty(t, r.Reconcile([]ImplParam{}, []*SpecParam{}, Components{}))
}

func TestReconcileSeverityOverride(t *testing.T) {
	impl := []ImplParam{{Name: "debug", DeclaredType: "bool", Kind: KindRequired}}
	r := New("get", "/pets")
	r.Severity = severity.SeverityWarning
	findings := r.Reconcile(impl, nil, nil)
	require.Len(t, findings, 1)
	assert.Equal(t, severity.SeverityWarning, findings[0].Severity)
}

func TestComponentsResolve(t *testing.T) {
	components := Components{
		"limitParam": {Name: "limit", In: "query", Schema: &SchemaInfo{BaseType: "integer"}},
		"unnamed":    {In: "query", Schema: &SchemaInfo{BaseType: "string"}},
	}

	tests := []struct {
		name     string
		ref      string
		wantName string
		wantOK   bool
	}{
		{name: "full component pointer", ref: "#/components/parameters/limitParam", wantName: "limit", wantOK: true},
		{name: "swagger pointer", ref: "#/parameters/limitParam", wantName: "limit", wantOK: true},
		{name: "bare key", ref: "limitParam", wantName: "limit", wantOK: true},
		{name: "key wins when component has no name", ref: "unnamed", wantName: "unnamed", wantOK: true},
		{name: "unknown component", ref: "#/components/parameters/nope", wantOK: false},
		{name: "trailing slash", ref: "#/components/parameters/", wantOK: false},
		{name: "empty", ref: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			param, name, ok := components.Resolve(tt.ref)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, param)
				assert.Equal(t, tt.wantName, name)
			}
		})
	}
}
