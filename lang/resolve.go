package lang

import (
	"maps"
	"slices"
)

// Namespace maps definition names to their resolved values.
type Namespace map[string]float64

// Names returns the names defined in ns in sorted order.
func (ns Namespace) Names() []string {
	return slices.Sorted(maps.Keys(ns))
}

// ResolveDefinitions computes the value of every definition.
//
// Duplicate names fail immediately with a [*RedefinitionError]. Otherwise
// definitions are evaluated in repeated passes, each evaluating every
// unresolved definition whose dependencies are all resolved. When a pass
// makes no progress, the remaining definitions fail with a
// [*MissingDefinitionError] if any of them uses a name that has no
// definition, or with a [*CircularDefinitionError] naming all of them.
func ResolveDefinitions(defs []*Definition) (Namespace, error) {
	byName, err := indexDefinitions(defs)
	if err != nil {
		return nil, err
	}

	ns := make(Namespace, len(byName))
	pending := slices.Sorted(maps.Keys(byName))

	for len(pending) > 0 {
		remaining := pending[:0:0]

		for _, name := range pending {
			def := byName[name]

			if !resolved(ns, def.Dependencies()) {
				remaining = append(remaining, name)

				continue
			}

			value, err := Evaluate(def.Body, ns)
			if err != nil {
				return nil, err
			}

			ns[name] = value
		}

		if len(remaining) == len(pending) {
			return nil, unresolvedError(byName, remaining)
		}

		pending = remaining
	}

	return ns, nil
}

// indexDefinitions maps each name to its definition, or reports all
// definitions of every duplicated name.
func indexDefinitions(defs []*Definition) (map[string]*Definition, error) {
	byName := make(map[string]*Definition, len(defs))
	groups := make(map[string][]*Definition)

	var order []string // duplicated names in order of first appearance

	for _, def := range defs {
		first, dup := byName[def.Name]
		if !dup {
			byName[def.Name] = def

			continue
		}

		if _, seen := groups[def.Name]; !seen {
			order = append(order, def.Name)
			groups[def.Name] = []*Definition{first}
		}

		groups[def.Name] = append(groups[def.Name], def)
	}

	if len(order) == 0 {
		return byName, nil
	}

	redef := &RedefinitionError{Groups: make([][]*Definition, 0, len(order))}
	for _, name := range order {
		redef.Groups = append(redef.Groups, groups[name])
	}

	return nil, redef
}

func resolved(ns Namespace, names []string) bool {
	for _, name := range names {
		if _, ok := ns[name]; !ok {
			return false
		}
	}

	return true
}

// unresolvedError classifies the definitions left after resolution stalls.
func unresolvedError(byName map[string]*Definition, names []string) error {
	var (
		missing   []string
		referrers []*Definition
	)

	for _, name := range names {
		def := byName[name]
		uses := false

		for _, dep := range def.Dependencies() {
			if _, ok := byName[dep]; !ok {
				missing = append(missing, dep)
				uses = true
			}
		}

		if uses {
			referrers = append(referrers, def)
		}
	}

	if len(missing) > 0 {
		slices.Sort(missing)

		return &MissingDefinitionError{
			Names:     slices.Compact(missing),
			Referrers: referrers,
		}
	}

	return &CircularDefinitionError{Names: slices.Clone(names)}
}
