package dashboard

import "strings"

// Variable is a resolved dashboard variable.
type Variable struct {
	Name  string
	Value any
}

// Placeholder returns the token a template cell uses to refer to name.
func Placeholder(name string) string {
	return "${" + name + "}"
}

// Substitute replaces every ${name} placeholder in cell with the value of the
// matching variable. Variables are applied once each, in order, so text
// introduced by one value is seen by later variables but never by itself.
func Substitute(cell string, vars []Variable) string {
	for _, v := range vars {
		cell = strings.ReplaceAll(cell, Placeholder(v.Name), Stringify(v.Value))
	}
	return cell
}
