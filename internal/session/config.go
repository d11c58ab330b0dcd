package session

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/asl-lang/aslc/pkg/ast"
)

// Config is the parsed form of asli/asl2c's `--configuration <json>` flag
// (spec.md §6): a flat object mapping a ConfigConstDecl's name to the value
// overriding its default.
type Config map[string]json.RawMessage

// ParseConfig decodes the --configuration flag's JSON document. An empty
// document (the flag's zero value) yields an empty Config, not an error.
func ParseConfig(data []byte) (Config, error) {
	if len(data) == 0 {
		return Config{}, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("session: parsing --configuration: %w", err)
	}

	return cfg, nil
}

// ApplyConfiguration resolves every top-level ConfigConstDecl against
// s.Config, rewriting it into an ordinary ConstDecl carrying either the
// configuration-supplied value or the declaration's own default
// (SPEC_FULL.md's Configuration section). A ConfigConstDecl with neither a
// supplied value nor a default is a session-level error, reported before
// typechecking ever sees the name.
func (s *Session) ApplyConfiguration(decls []ast.Decl) ([]ast.Decl, error) {
	out := make([]ast.Decl, len(decls))

	for i, d := range decls {
		cc, ok := d.(*ast.ConfigConstDecl)
		if !ok {
			out[i] = d
			continue
		}

		value, err := s.resolveConfigValue(cc)
		if err != nil {
			return nil, err
		}

		out[i] = &ast.ConstDecl{Name: cc.Name, Type: cc.Type, Value: value}
	}

	return out, nil
}

func (s *Session) resolveConfigValue(cc *ast.ConfigConstDecl) (ast.Expr, error) {
	raw, supplied := s.Config[cc.Name.Name]
	if !supplied {
		if cc.Default == nil {
			return nil, fmt.Errorf("session: %s: no --configuration value and no default for %q", cc.Loc(), cc.Name.Name)
		}

		return cc.Default, nil
	}

	return jsonToExpr(cc.Name.Name, raw)
}

// jsonToExpr converts one --configuration field's raw JSON into the literal
// expression form ConstDecl.Value expects: an integer, a boolean, or a
// bitvector written as a JSON string of '0'/'1' characters (ASL has no
// general string runtime type to decode into, per spec.md's Non-goals, so a
// string value is accepted only in this one fixed bit-pattern shape).
func jsonToExpr(name string, raw json.RawMessage) (ast.Expr, error) {
	var asBool bool
	if err := json.Unmarshal(raw, &asBool); err == nil {
		return &ast.LitBool{Value: asBool}, nil
	}

	var asBits string
	if err := json.Unmarshal(raw, &asBits); err == nil {
		v, width, err := parseBitPattern(asBits)
		if err != nil {
			return nil, fmt.Errorf("session: configuration value for %q: %w", name, err)
		}

		return &ast.LitBits{Value: v, Width: width}, nil
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		v, ok := new(big.Int).SetString(asNumber.String(), 10)
		if !ok {
			return nil, fmt.Errorf("session: configuration value for %q is not an integer: %s", name, asNumber)
		}

		return &ast.LitInt{Value: v}, nil
	}

	return nil, fmt.Errorf("session: configuration value for %q has an unsupported JSON shape", name)
}

func parseBitPattern(s string) (*big.Int, uint, error) {
	v := new(big.Int)

	for _, c := range s {
		switch c {
		case '0':
			v.Lsh(v, 1)
		case '1':
			v.Lsh(v, 1)
			v.Or(v, big.NewInt(1))
		default:
			return nil, 0, fmt.Errorf("not a bit pattern: %q", s)
		}
	}

	return v, uint(len(s)), nil
}
