package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamType is a small enum for parameter types used in metadata.
type ParamType string

const (
	ParamTypeInt    ParamType = "int"
	ParamTypeFloat  ParamType = "float"
	ParamTypeBool   ParamType = "bool"
	ParamTypeString ParamType = "string"
	ParamTypeEnum   ParamType = "enum"
)

// ValidationRule is a machine-friendly representation of the constraints
// that a UI or client can use to validate input before invoking a command.
type ValidationRule struct {
	Type        ParamType `json:"type"`
	Required    bool      `json:"required"`
	Min         *float64  `json:"min,omitempty"`
	Max         *float64  `json:"max,omitempty"`
	EnumOptions []string  `json:"enumOptions,omitempty"` // valid when Type == ParamTypeEnum
	Example     string    `json:"example,omitempty"`
	Hint        string    `json:"hint,omitempty"`
}

func bound(v float64) *float64 { return &v }

// argBounds holds numeric limits shared by every command with an argument of that name.
var argBounds = map[string][2]*float64{
	"depth":       {bound(2), nil},
	"levels":      {bound(1), nil},
	"radius":      {bound(0), nil},
	"cols":        {bound(0), nil},
	"amount":      {bound(0), bound(1)},
	"value":       {bound(0), bound(1)},
	"ignoreFloor": {bound(0), bound(1)},
	"row":         {bound(0), nil},
	"col":         {bound(0), nil},
}

// parseBoolLikeToString accepts common truthy/falsy forms and returns "true"/"false".
func parseBoolLikeToString(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return "true", nil
	case "0", "f", "false", "n", "no", "off":
		return "false", nil
	default:
		return "", fmt.Errorf("invalid boolean: %q", s)
	}
}

// GenerateTooltip produces a help string for a command.
func GenerateTooltip(c CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if len(c.Args) == 0 {
		sb.WriteString(" (no parameters)")
		return sb.String()
	}
	sb.WriteString("\nparameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)", a.Name, a.Type, req)
		if a.Description != "" {
			sb.WriteString(": " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates ValidationRule entries from a CommandSpec.
func GenerateValidationRules(c CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "int":
			t = ParamTypeInt
		case "float":
			t = ParamTypeFloat
		case "bool":
			t = ParamTypeBool
		case "enum":
			t = ParamTypeEnum
		default:
			t = ParamTypeString
		}
		r := ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
		if t == ParamTypeEnum {
			r.EnumOptions = strings.Split(a.Description, "|")
		}
		if b, ok := argBounds[a.Name]; ok {
			r.Min, r.Max = b[0], b[1]
		}
		rules[a.Name] = r
	}
	return rules
}

// MetaStore indexes command metadata by name.
type MetaStore struct {
	Commands []CommandSpec
	byName   map[string]CommandSpec
}

// NewMetaStore creates a MetaStore from a command list.
func NewMetaStore(cmds []CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup returns the command named name.
func (m *MetaStore) Lookup(name string) (CommandSpec, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// Resolve maps user input to a command name: an exact match, a
// case-insensitive match, or a unique case-insensitive prefix. Ambiguous
// prefixes return the candidates in the error.
func (m *MetaStore) Resolve(input string) (string, error) {
	if _, ok := m.byName[input]; ok {
		return input, nil
	}
	lower := strings.ToLower(strings.TrimSpace(input))
	var matches []string
	for _, c := range m.Commands {
		name := strings.ToLower(c.Name)
		if name == lower {
			return c.Name, nil
		}
		if strings.HasPrefix(name, lower) {
			matches = append(matches, c.Name)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown command: %s", input)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("ambiguous command %q, candidates: %s", input, strings.Join(matches, ", "))
}

// GetTooltip returns the help string for a command.
func (m *MetaStore) GetTooltip(name string) (string, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), nil
}

// GetCommandHelp returns both tooltip and validation rules for a command.
func (m *MetaStore) GetCommandHelp(name string) (string, map[string]ValidationRule, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), GenerateValidationRules(c), nil
}

// NormalizeArgs validates raw user input against a command's metadata and
// returns canonical strings, one per declared argument. Missing optional
// arguments come back empty; extra arguments are an error.
func NormalizeArgs(store *MetaStore, cmdName string, args []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	if len(args) > len(c.Args) {
		return nil, fmt.Errorf("%s takes at most %d arguments, got %d", cmdName, len(c.Args), len(args))
	}
	rules := GenerateValidationRules(c)
	out := make([]string, len(c.Args))
	for i, a := range c.Args {
		raw := ""
		if i < len(args) {
			raw = strings.TrimSpace(args[i])
		}
		if raw == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, raw)
			}
			if err := checkBounds(a.Name, float64(v), vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatInt(v, 10)
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected float, got %q", a.Name, raw)
			}
			if err := checkBounds(a.Name, f, vr); err != nil {
				return nil, err
			}
			out[i] = strconv.FormatFloat(f, 'f', -1, 64)
		case ParamTypeBool:
			bs, err := parseBoolLikeToString(raw)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: %w", a.Name, err)
			}
			out[i] = bs
		case ParamTypeEnum:
			v, ok := matchEnum(raw, vr.EnumOptions)
			if !ok {
				return nil, fmt.Errorf("parameter %s: %q is not one of %s", a.Name, raw, strings.Join(vr.EnumOptions, ", "))
			}
			out[i] = v
		default:
			out[i] = raw
		}
	}
	return out, nil
}

func checkBounds(name string, v float64, vr ValidationRule) error {
	if vr.Min != nil && v < *vr.Min {
		return fmt.Errorf("parameter %s: %v < min %v", name, v, *vr.Min)
	}
	if vr.Max != nil && v > *vr.Max {
		return fmt.Errorf("parameter %s: %v > max %v", name, v, *vr.Max)
	}
	return nil
}

// matchEnum returns the option equal to raw ignoring case.
func matchEnum(raw string, options []string) (string, bool) {
	for _, o := range options {
		if strings.EqualFold(o, raw) {
			return o, true
		}
	}
	return "", false
}
