package lang

import (
	"errors"
	"slices"
	"testing"
)

func mustExtract(t *testing.T, text string) []*Definition {
	t.Helper()

	defs, err := ExtractDefinitions(text)
	if err != nil {
		t.Fatalf("ExtractDefinitions(%q) failed: %v", text, err)
	}

	return defs
}

func TestResolveDefinitions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Namespace
	}{
		{
			name: "independent",
			text: "@=a[1] @=b[2.5]",
			want: Namespace{"a": 1, "b": 2.5},
		},
		{
			name: "forward_use",
			text: "@=total[price*qty] @=price[2.5] @=qty[4]",
			want: Namespace{"total": 10, "price": 2.5, "qty": 4},
		},
		{
			name: "chain",
			text: "@=d[c+1] @=c[b+1] @=b[a+1] @=a[1]",
			want: Namespace{"a": 1, "b": 2, "c": 3, "d": 4},
		},
		{
			name: "shared_dependency",
			text: "@=x[2] @=y[x*x] @=z[x+y]",
			want: Namespace{"x": 2, "y": 4, "z": 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, err := ResolveDefinitions(mustExtract(t, tt.text))
			if err != nil {
				t.Fatalf("ResolveDefinitions failed: %v", err)
			}

			if len(ns) != len(tt.want) {
				t.Errorf("namespace has %d names, want %d", len(ns), len(tt.want))
			}

			for name, want := range tt.want {
				if got, ok := ns[name]; !ok || got != want {
					t.Errorf("%s = %v (defined %t), want %v", name, got, ok, want)
				}
			}
		})
	}
}

func TestResolveDefinitions_OrderIndependent(t *testing.T) {
	defs := mustExtract(t, "@=d[c+1] @=c[b+1] @=b[a+1] @=a[1]")
	reversed := slices.Clone(defs)
	slices.Reverse(reversed)

	a, err := ResolveDefinitions(defs)
	if err != nil {
		t.Fatalf("ResolveDefinitions failed: %v", err)
	}

	b, err := ResolveDefinitions(reversed)
	if err != nil {
		t.Fatalf("ResolveDefinitions (reversed) failed: %v", err)
	}

	for name, v := range a {
		if b[name] != v {
			t.Errorf("%s: %v != %v", name, v, b[name])
		}
	}
}

func TestResolveDefinitions_Circular(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "self", text: "@=a[a+1]", want: []string{"a"}},
		{name: "mutual", text: "@=a[b] @=b[a]", want: []string{"a", "b"}},
		{
			name: "downstream",
			text: "@=c[a+1] @=a[b] @=b[a] @=ok[1]",
			want: []string{"a", "b", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveDefinitions(mustExtract(t, tt.text))

			var ce *CircularDefinitionError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v, want *CircularDefinitionError", err)
			}

			if !slices.Equal(ce.Names, tt.want) {
				t.Errorf("Names = %v, want %v", ce.Names, tt.want)
			}

			if !errors.Is(err, ErrCircularDefinition) {
				t.Error("expected error to match ErrCircularDefinition")
			}
		})
	}
}

func TestResolveDefinitions_Missing(t *testing.T) {
	_, err := ResolveDefinitions(mustExtract(t, "@=a[z+1] @=b[a+y] @=c[z]"))

	var me *MissingDefinitionError
	if !errors.As(err, &me) {
		t.Fatalf("error = %v, want *MissingDefinitionError", err)
	}

	if want := []string{"y", "z"}; !slices.Equal(me.Names, want) {
		t.Errorf("Names = %v, want %v", me.Names, want)
	}

	var referrers []string
	for _, def := range me.Referrers {
		referrers = append(referrers, def.Name)
	}

	if want := []string{"a", "b", "c"}; !slices.Equal(referrers, want) {
		t.Errorf("Referrers = %v, want %v", referrers, want)
	}

	if !errors.Is(err, ErrMissingDefinition) {
		t.Error("expected error to match ErrMissingDefinition")
	}

	if want := "the following names are undefined: y,z"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestResolveDefinitions_MissingInsideCycle(t *testing.T) {
	_, err := ResolveDefinitions(mustExtract(t, "@=a[b+gone] @=b[a]"))

	if !errors.Is(err, ErrMissingDefinition) {
		t.Fatalf("error = %v, want ErrMissingDefinition", err)
	}
}

func TestResolveDefinitions_Redefinition(t *testing.T) {
	_, err := ResolveDefinitions(mustExtract(t, "@=x[1] @=y[x] @=x[2] @=y[3] @=x[a]"))

	var re *RedefinitionError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *RedefinitionError", err)
	}

	if want := []string{"x", "y"}; !slices.Equal(re.Names(), want) {
		t.Errorf("Names() = %v, want %v", re.Names(), want)
	}

	if n := len(re.Groups[0]); n != 3 {
		t.Errorf("expected 3 definitions of x, got %d", n)
	}

	if n := len(re.Groups[1]); n != 2 {
		t.Errorf("expected 2 definitions of y, got %d", n)
	}

	if !errors.Is(err, ErrRedefinition) {
		t.Error("expected error to match ErrRedefinition")
	}
}

func TestRedefinitionError_Error(t *testing.T) {
	_, err := ResolveDefinitions(mustExtract(t, "@=x[1] @=x[2]"))

	want := "the following name has multiple definitions: x (1:1; 1:8)"
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}

func TestResolveDefinitions_Empty(t *testing.T) {
	ns, err := ResolveDefinitions(nil)
	if err != nil {
		t.Fatalf("ResolveDefinitions failed: %v", err)
	}

	if len(ns) != 0 {
		t.Errorf("expected empty namespace, got %v", ns)
	}
}

func TestNamespace_Names(t *testing.T) {
	ns := Namespace{"b": 1, "a": 2, "c": 3}

	if want := []string{"a", "b", "c"}; !slices.Equal(ns.Names(), want) {
		t.Errorf("Names() = %v, want %v", ns.Names(), want)
	}
}
