package repl

import (
	"context"
	"slices"
	"strings"

	"github.com/ardnew/ledgerscript/lang"
)

// scratchName names the document built from the lines entered in the REPL.
const scratchName = "repl"

// session is the state of one REPL: the source files it was started with and
// the scratch document of accepted lines. The scratch document is compiled
// together with the source files, so its definitions share their namespace.
type session struct {
	compiler *lang.Compiler
	sources  []lang.Source
	lines    []string
	unit     *lang.Unit
}

// newSession resolves sources and returns a session with an empty scratch
// document.
func newSession(
	ctx context.Context,
	compiler *lang.Compiler,
	sources []lang.Source,
) (*session, error) {
	s := &session{compiler: compiler, sources: sources}

	unit, err := s.resolve(ctx, nil)
	if err != nil {
		return nil, err
	}

	s.unit = unit

	return s, nil
}

// resolve resolves the source files together with a scratch document made of
// lines.
func (s *session) resolve(ctx context.Context, lines []string) (*lang.Unit, error) {
	texts := append(slices.Clone(s.sources), lang.Source{
		Name: scratchName,
		Text: strings.Join(lines, "\n"),
	})

	return s.compiler.Resolve(ctx, texts...)
}

// eval appends line to the scratch document and returns the compiled line.
// The scratch document is unchanged if it no longer compiles.
func (s *session) eval(ctx context.Context, line string) (string, error) {
	lines := append(slices.Clone(s.lines), line)

	unit, err := s.resolve(ctx, lines)
	if err != nil {
		return "", err
	}

	s.lines, s.unit = lines, unit

	text := s.scratch()

	return text[strings.LastIndexByte(text, '\n')+1:], nil
}

// scratch returns the compiled scratch document.
func (s *session) scratch() string {
	out := s.unit.Render()

	return out[len(out)-1].Text
}

// clear empties the scratch document.
func (s *session) clear(ctx context.Context) error {
	unit, err := s.resolve(ctx, nil)
	if err != nil {
		return err
	}

	s.lines, s.unit = nil, unit

	return nil
}

// names returns the defined names in sorted order.
func (s *session) names() []string { return s.unit.Namespace.Names() }

// definition returns the definition of name and its value.
func (s *session) definition(name string) (*lang.Definition, float64, bool) {
	for _, def := range s.unit.Definitions() {
		if def.Name == name {
			return def, s.unit.Namespace[name], true
		}
	}

	return nil, 0, false
}
