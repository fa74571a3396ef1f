package extractor

import (
	"reflect"

	"github.com/dop251/goja/ast"
)

// astPkgPath identifies goja AST struct types during traversal.
var astPkgPath = reflect.TypeOf(ast.Program{}).PkgPath()

// walkCalls visits every call expression in the program, including calls
// nested inside arguments of other calls.
//
// goja does not ship an AST visitor, so traversal is structural: any field
// (or slice element) of an AST struct that leads to another AST struct is
// followed. This keeps the walker independent of the parser's exact node
// inventory — new node kinds are traversed without code changes.
func walkCalls(program *ast.Program, fn func(*ast.CallExpression)) {
	visit(reflect.ValueOf(program), fn)
}

func visit(v reflect.Value, fn func(*ast.CallExpression)) {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return
		}
		if v.CanInterface() {
			if call, ok := v.Interface().(*ast.CallExpression); ok {
				fn(call)
			}
		}
		visit(v.Elem(), fn)
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		visit(v.Elem(), fn)
	case reflect.Struct:
		if v.Type().PkgPath() != astPkgPath {
			return // don't wander into fileset or position types
		}
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanInterface() {
				visit(f, fn)
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			visit(v.Index(i), fn)
		}
	}
}
